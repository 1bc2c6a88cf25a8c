package mifare

import "fmt"

// Key type codes for General Authenticate.
const (
	KeyTypeA = 0x60
	KeyTypeB = 0x61
)

// piccRID identifies a PC/SC part 3 storage card inside an ATR. The
// two card-name bytes that follow the RID and standard byte give the
// card family.
var piccRID = [5]byte{0xA0, 0x00, 0x00, 0x03, 0x06}

// DensityFromATR derives the card density from the ATR card-name
// bytes: 0x0001 is MIFARE Classic 1K, 0x0002 is 4K. Returns false for
// any other card or a non-storage-card ATR.
func DensityFromATR(atr []byte) (Density, bool) {
	for i := 0; i+7 < len(atr); i++ {
		if [5]byte(atr[i:i+5]) != piccRID {
			continue
		}
		// atr[i+5] is the standard byte, atr[i+6:i+8] the card name.
		name := uint16(atr[i+6])<<8 | uint16(atr[i+7])
		switch name {
		case 0x0001:
			return Density1K, true
		case 0x0002:
			return Density4K, true
		}
		return 0, false
	}
	return 0, false
}

// loadKey stores a key in the reader's volatile memory (Load
// Authentication Keys, FF 82).
func loadKey(card Card, key [KeySize]byte) error {
	apdu := append([]byte{0xFF, 0x82, 0x00, 0x00, KeySize}, key[:]...)
	_, sw, err := transmit(card, apdu)
	if err != nil {
		return err
	}
	if sw != SWSuccess {
		return &SWError{Ins: 0x82, SW: sw}
	}
	return nil
}

// authBlock authenticates a block with the loaded key (General
// Authenticate, FF 86). keyType is KeyTypeA or KeyTypeB.
func authBlock(card Card, block byte, keyType byte) error {
	apdu := []byte{0xFF, 0x86, 0x00, 0x00, 0x05, 0x01, 0x00, block, keyType, 0x00}
	_, sw, err := transmit(card, apdu)
	if err != nil {
		return err
	}
	if sw != SWSuccess {
		return &SWError{Ins: 0x86, SW: sw}
	}
	return nil
}

// readBlock reads one 16-byte block (Read Binary, FF B0).
func readBlock(card Card, block byte) ([]byte, error) {
	apdu := []byte{0xFF, 0xB0, 0x00, block, BlockSize}
	data, sw, err := transmit(card, apdu)
	if err != nil {
		return nil, err
	}
	if sw != SWSuccess {
		return nil, &SWError{Ins: 0xB0, SW: sw}
	}
	if len(data) != BlockSize {
		return nil, fmt.Errorf("block %d: read %d bytes, expected %d", block, len(data), BlockSize)
	}
	return data, nil
}

// ReadCardDump images a card through a PC/SC reader into a raw dump of
// the density's size. Every sector is authenticated at its trailer
// block with the given key before its blocks are read; the first
// failed command aborts the read. The result feeds Decode unchanged,
// as if it had been loaded from a dump file.
func ReadCardDump(card Card, density Density, key [KeySize]byte, keyType byte) ([]byte, error) {
	if err := loadKey(card, key); err != nil {
		return nil, fmt.Errorf("load key: %w", err)
	}

	dump := make([]byte, 0, density.DumpSize())
	for s := 0; s < density.TrailerCount(); s++ {
		trailer := byte(sectorTrailerBlock(s))
		if err := authBlock(card, trailer, keyType); err != nil {
			return nil, fmt.Errorf("authenticate sector %d: %w", s, err)
		}
		first := sectorFirstBlock(s)
		for b := 0; b < sectorBlocks(s); b++ {
			data, err := readBlock(card, byte(first+b))
			if err != nil {
				return nil, fmt.Errorf("read sector %d: %w", s, err)
			}
			dump = append(dump, data...)
		}
	}
	return dump, nil
}
