package mifare

import (
	"fmt"
	"io"
)

// keyToNum packs a 6-byte key into a number for %012x formatting.
func keyToNum(key [KeySize]byte) uint64 {
	var num uint64
	for _, b := range key {
		num = num<<8 | uint64(b)
	}
	return num
}

func printSeparator(w io.Writer) {
	fmt.Fprintln(w, "+---+----------------+----------------+")
}

// PrintKeyTable renders a key table in the fixed-width layout Proxmark
// operators are used to: a header with density and UID, then one row
// per sector with both keys as 12 hex digits.
func PrintKeyTable(w io.Writer, t *KeyTable) {
	printSeparator(w)
	fmt.Fprintf(w, "| %s|            %08x             |\n", t.Density, t.UID.Uint32())
	printSeparator(w)
	fmt.Fprintln(w, "|sec|key A           |key B           |")
	printSeparator(w)
	for _, p := range t.Pairs {
		fmt.Fprintf(w, "|%03d|  %012x  |  %012x  |\n", p.Sector, keyToNum(p.KeyA), keyToNum(p.KeyB))
	}
	printSeparator(w)
}
