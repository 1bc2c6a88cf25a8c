package mifare

import "fmt"

// UID is the numeric card identifier, the first 4 bytes of the dump.
// The card format reserves 8 bytes for the field but downstream
// tooling only uses these 4.
type UID [UIDSize]byte

// Uint32 returns the UID as a big-endian number, the form used in
// output filenames and the console report.
func (u UID) Uint32() uint32 {
	return uint32(u[0])<<24 | uint32(u[1])<<16 | uint32(u[2])<<8 | uint32(u[3])
}

// String renders the UID as 8 lowercase hex digits.
func (u UID) String() string {
	return fmt.Sprintf("%08x", u.Uint32())
}

// SectorKeyPair holds the two access keys of one sector. Keys are
// opaque 48-bit values; no interpretation beyond byte order.
type SectorKeyPair struct {
	Sector int
	KeyA   [KeySize]byte
	KeyB   [KeySize]byte
}

// KeyTable is the decoded key inventory of one dump: the card UID, its
// density, and one key pair per sector in card order. A KeyTable is
// built once by Decode and never mutated.
type KeyTable struct {
	UID     UID
	Density Density
	Pairs   []SectorKeyPair
}
