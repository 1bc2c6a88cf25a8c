package mifare

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// testTable builds a key table with per-sector marker keys.
func testTable(d Density) *KeyTable {
	t := &KeyTable{UID: UID{0xDE, 0xAD, 0xBE, 0xEF}, Density: d}
	for s := 0; s < d.TrailerCount(); s++ {
		p := SectorKeyPair{Sector: s}
		for i := 0; i < KeySize; i++ {
			p.KeyA[i] = byte(s)
			p.KeyB[i] = byte(0x80 + s)
		}
		t.Pairs = append(t.Pairs, p)
	}
	return t
}

func TestEncodeMfocGUI(t *testing.T) {
	for _, d := range []Density{Density1K, Density4K} {
		table := testTable(d)
		aKeys, bKeys := EncodeMfocGUI(table)
		require.Len(t, aKeys, d.KeyRegionBytes())
		require.Len(t, bKeys, d.KeyRegionBytes())

		// The buffers must be the pair keys concatenated in card order.
		var wantA, wantB []byte
		for _, p := range table.Pairs {
			wantA = append(wantA, p.KeyA[:]...)
			wantB = append(wantB, p.KeyB[:]...)
		}
		require.Equal(t, wantA, aKeys)
		require.Equal(t, wantB, bKeys)
	}
}

func TestEncodeProxmark(t *testing.T) {
	for _, d := range []Density{Density1K, Density4K} {
		table := testTable(d)
		out := EncodeProxmark(table)
		aKeys, bKeys := EncodeMfocGUI(table)

		require.Len(t, out, 2*len(aKeys))
		require.Equal(t, append(append([]byte{}, aKeys...), bKeys...), out)
	}
}

func TestEncodeProxmark4KLength(t *testing.T) {
	out := EncodeProxmark(testTable(Density4K))
	require.Len(t, out, 480)
}

func TestEncodeIdempotent(t *testing.T) {
	table := testTable(Density1K)

	a1, b1 := EncodeMfocGUI(table)
	a2, b2 := EncodeMfocGUI(table)
	require.True(t, bytes.Equal(a1, a2))
	require.True(t, bytes.Equal(b1, b2))

	p1 := EncodeProxmark(table)
	p2 := EncodeProxmark(table)
	require.True(t, bytes.Equal(p1, p2))
}

func TestFilenames(t *testing.T) {
	uid := UID{0xDE, 0xAD, 0xBE, 0xEF}

	aName, bName := MfocGUIFilenames(uid)
	require.Equal(t, "adeadbeef.dump", aName)
	require.Equal(t, "bdeadbeef.dump", bName)
	require.Equal(t, "deadbeef.bin", ProxmarkFilename(uid))

	// Zero-padded to 8 hex digits.
	aName, bName = MfocGUIFilenames(UID{0x00, 0x00, 0x00, 0x2A})
	require.Equal(t, "a0000002a.dump", aName)
	require.Equal(t, "b0000002a.dump", bName)
}
