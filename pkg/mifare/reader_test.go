package mifare

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCard is a scripted storage card behind the pseudo-APDU set:
// load key, authenticate, read binary. It only releases blocks after a
// successful authentication with its key.
type fakeCard struct {
	dump    []byte
	key     [KeySize]byte
	keyType byte
	loaded  [KeySize]byte
	hasKey  bool
	authed  bool
	authLog []byte
	readLog []byte
}

func newFakeCard(dump []byte, key [KeySize]byte, keyType byte) *fakeCard {
	return &fakeCard{dump: dump, key: key, keyType: keyType}
}

func sw(data []byte, sw uint16) []byte {
	// Cap the slice so append allocates instead of writing the status
	// word into the fake's backing dump array.
	return append(data[:len(data):len(data)], byte(sw>>8), byte(sw))
}

func (c *fakeCard) Transmit(apdu []byte) ([]byte, error) {
	if len(apdu) < 5 || apdu[0] != 0xFF {
		return sw(nil, SWFunctionNotSupported), nil
	}
	switch apdu[1] {
	case 0xCA: // Get Data (UID)
		return sw(c.dump[:UIDSize], SWSuccess), nil
	case 0x82: // Load Authentication Keys
		if len(apdu) != 5+KeySize {
			return sw(nil, SWWrongLength), nil
		}
		copy(c.loaded[:], apdu[5:])
		c.hasKey = true
		return sw(nil, SWSuccess), nil
	case 0x86: // General Authenticate
		block, keyType := apdu[7], apdu[8]
		c.authLog = append(c.authLog, block)
		if !c.hasKey || c.loaded != c.key || keyType != c.keyType {
			c.authed = false
			return sw(nil, SWFailed), nil
		}
		c.authed = true
		return sw(nil, SWSuccess), nil
	case 0xB0: // Read Binary
		if !c.authed {
			return sw(nil, SWSecurityNotSatisfied), nil
		}
		block := int(apdu[3])
		c.readLog = append(c.readLog, apdu[3])
		return sw(c.dump[block*BlockSize:(block+1)*BlockSize], SWSuccess), nil
	}
	return sw(nil, SWFunctionNotSupported), nil
}

// patternDump builds a dump where every byte encodes its block number.
func patternDump(d Density) []byte {
	dump := make([]byte, d.DumpSize())
	for i := range dump {
		dump[i] = byte(i / BlockSize)
	}
	return dump
}

var testKey = [KeySize]byte{0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5}

func TestReadCardDump1K(t *testing.T) {
	dump := patternDump(Density1K)
	card := newFakeCard(dump, testKey, KeyTypeA)

	raw, err := ReadCardDump(card, Density1K, testKey, KeyTypeA)
	require.NoError(t, err)
	require.Equal(t, dump, raw)

	// One authentication per sector, at the trailer block.
	require.Equal(t, []byte{3, 7, 11, 15, 19, 23, 27, 31, 35, 39, 43, 47, 51, 55, 59, 63}, card.authLog)
	require.Len(t, card.readLog, Density1K.BlockCount())
}

func TestReadCardDump4K(t *testing.T) {
	dump := patternDump(Density4K)
	card := newFakeCard(dump, testKey, KeyTypeA)

	raw, err := ReadCardDump(card, Density4K, testKey, KeyTypeA)
	require.NoError(t, err)
	require.Equal(t, dump, raw)

	require.Len(t, card.authLog, 40)
	require.Equal(t, byte(127), card.authLog[31])
	require.Equal(t, byte(143), card.authLog[32])
	require.Equal(t, byte(255), card.authLog[39])
	require.Len(t, card.readLog, Density4K.BlockCount())
}

func TestReadCardDumpWrongKey(t *testing.T) {
	card := newFakeCard(patternDump(Density1K), testKey, KeyTypeA)

	wrong := [KeySize]byte{1, 2, 3, 4, 5, 6}
	raw, err := ReadCardDump(card, Density1K, wrong, KeyTypeA)
	require.Nil(t, raw)
	require.Error(t, err)
	require.True(t, IsAuthError(err))
	require.Contains(t, err.Error(), "sector 0")
}

func TestReadCardDumpKeyB(t *testing.T) {
	dump := patternDump(Density1K)
	card := newFakeCard(dump, testKey, KeyTypeB)

	// Key A auth must fail against a key-B-only card.
	_, err := ReadCardDump(card, Density1K, testKey, KeyTypeA)
	require.True(t, IsAuthError(err))

	raw, err := ReadCardDump(card, Density1K, testKey, KeyTypeB)
	require.NoError(t, err)
	require.Equal(t, dump, raw)
}

func TestReadCardDumpFeedsDecode(t *testing.T) {
	dump := make([]byte, DumpSize1K)
	copy(dump, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	for s := 0; s < 16; s++ {
		var keyA, keyB [KeySize]byte
		for i := range keyA {
			keyA[i] = byte(s)
			keyB[i] = byte(0x80 + s)
		}
		putTrailer(dump, s, keyA, keyB)
	}
	card := newFakeCard(dump, testKey, KeyTypeA)

	raw, err := ReadCardDump(card, Density1K, testKey, KeyTypeA)
	require.NoError(t, err)

	table, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "deadbeef", table.UID.String())
	require.Len(t, table.Pairs, 16)
	require.Equal(t, [KeySize]byte{5, 5, 5, 5, 5, 5}, table.Pairs[5].KeyA)
}

func TestGetUID(t *testing.T) {
	card := newFakeCard(patternDump(Density1K), testKey, KeyTypeA)
	uid, err := GetUID(card)
	require.NoError(t, err)
	require.Len(t, uid, UIDSize)
}

func TestDensityFromATR(t *testing.T) {
	atr1K := []byte{
		0x3B, 0x8F, 0x80, 0x01, 0x80, 0x4F, 0x0C,
		0xA0, 0x00, 0x00, 0x03, 0x06, 0x03, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x6A,
	}
	d, ok := DensityFromATR(atr1K)
	require.True(t, ok)
	require.Equal(t, Density1K, d)

	atr4K := append([]byte{}, atr1K...)
	atr4K[14] = 0x02
	d, ok = DensityFromATR(atr4K)
	require.True(t, ok)
	require.Equal(t, Density4K, d)

	// Ultralight card name (0x0003) is not a Classic density.
	atrUL := append([]byte{}, atr1K...)
	atrUL[14] = 0x03
	_, ok = DensityFromATR(atrUL)
	require.False(t, ok)

	// ISO 14443-4 card ATR without the storage-card RID.
	_, ok = DensityFromATR([]byte{0x3B, 0x81, 0x80, 0x01, 0x80, 0x80})
	require.False(t, ok)

	_, ok = DensityFromATR(nil)
	require.False(t, ok)
}
