package mifare

// Decode interprets a raw card dump and returns its key table. The
// dump must be exactly 1024 or 4096 bytes; anything else fails with a
// SizeError before any byte is read. On success the table holds one
// key pair per sector, in card order.
func Decode(raw []byte) (*KeyTable, error) {
	density, ok := DensityForSize(len(raw))
	if !ok {
		return nil, &SizeError{Length: len(raw)}
	}

	var uid UID
	copy(uid[:], raw[:UIDSize])

	count := density.TrailerCount()
	pairs := make([]SectorKeyPair, 0, count)

	cur := firstTrailerOffset
	for i := 0; i < count; i++ {
		p := SectorKeyPair{Sector: i}

		copy(p.KeyA[:], raw[cur:cur+KeySize])
		cur += KeySize

		// Skip the access condition bytes between the keys.
		cur += accessBytes

		copy(p.KeyB[:], raw[cur:cur+KeySize])
		cur += KeySize

		cur += blockStride(i)
		pairs = append(pairs, p)
	}

	return &KeyTable{UID: uid, Density: density, Pairs: pairs}, nil
}
