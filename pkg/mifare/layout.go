package mifare

// Geometry constants shared across the package.
const (
	// KeySize is the width of a MIFARE Classic sector key.
	KeySize = 6

	// BlockSize is the width of one memory block.
	BlockSize = 16

	// DumpSize1K and DumpSize4K are the only valid raw dump lengths.
	DumpSize1K = 1024
	DumpSize4K = 4096

	// uidFieldSize is the reserved UID field at the start of a dump.
	// Only the first UIDSize bytes form the numeric UID.
	uidFieldSize = 8

	// UIDSize is the width of the numeric card UID.
	UIDSize = 4

	// firstTrailerOffset is the absolute offset of sector 0's trailer.
	firstTrailerOffset = 0x30

	// accessBytes is the width of the access condition field between
	// key A and key B inside a trailer.
	accessBytes = 4

	// largeSectorIndex is the first sector with 16 blocks instead of 4.
	largeSectorIndex = 32
)

// Density is the card capacity class. It decides how many sector
// trailers a dump holds and how they are spaced.
type Density int

const (
	Density1K Density = iota
	Density4K
)

// DensityForSize maps a raw dump length to its density. Any length
// other than 1024 or 4096 has no density.
func DensityForSize(n int) (Density, bool) {
	switch n {
	case DumpSize1K:
		return Density1K, true
	case DumpSize4K:
		return Density4K, true
	}
	return 0, false
}

// TrailerCount returns the number of sector trailers (= sectors, = key
// pairs) for the density.
func (d Density) TrailerCount() int {
	if d == Density4K {
		return 40
	}
	return 16
}

// KeyRegionBytes returns the total size of all A keys (equally, all B
// keys) for the density: 96 bytes for 1K, 240 for 4K.
func (d Density) KeyRegionBytes() int {
	return d.TrailerCount() * KeySize
}

// DumpSize returns the raw dump length for the density.
func (d Density) DumpSize() int {
	if d == Density4K {
		return DumpSize4K
	}
	return DumpSize1K
}

// BlockCount returns the total number of 16-byte blocks on the card.
func (d Density) BlockCount() int {
	return d.DumpSize() / BlockSize
}

func (d Density) String() string {
	if d == Density4K {
		return "4K"
	}
	return "1K"
}

// blockStride is the gap between the end of trailer i and the start of
// trailer i+1. The threshold sits at index 31: the stride is consumed
// after trailer i is read, and sector 31 is the last 4-block sector.
func blockStride(i int) int {
	if i < 31 {
		return 0x30
	}
	return 0xF0
}

// sectorBlocks returns the number of blocks in sector s.
func sectorBlocks(s int) int {
	if s < largeSectorIndex {
		return 4
	}
	return 16
}

// sectorFirstBlock returns the absolute block number of the first
// block of sector s.
func sectorFirstBlock(s int) int {
	if s < largeSectorIndex {
		return s * 4
	}
	return largeSectorIndex*4 + (s-largeSectorIndex)*16
}

// sectorTrailerBlock returns the absolute block number of sector s's
// trailer (its last block).
func sectorTrailerBlock(s int) int {
	return sectorFirstBlock(s) + sectorBlocks(s) - 1
}
