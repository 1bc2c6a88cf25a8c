package mifare

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ParseKeyHex converts a 12-hex-character string into a 6-byte key.
func ParseKeyHex(s string) ([KeySize]byte, error) {
	var key [KeySize]byte
	s = strings.TrimSpace(s)
	if len(s) != KeySize*2 {
		return key, fmt.Errorf("key must be %d hex chars, got %d", KeySize*2, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("invalid hex key: %v", err)
	}
	copy(key[:], raw)
	return key, nil
}

// LoadKeyHexFile loads a 6-byte sector key from a .hex file. The file
// should contain a single line with 12 hexadecimal characters.
func LoadKeyHexFile(path string) ([KeySize]byte, error) {
	var key [KeySize]byte

	f, err := os.Open(path)
	if err != nil {
		return key, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return ParseKeyHex(line)
	}
	if err := scanner.Err(); err != nil {
		return key, err
	}
	return key, errors.New("key file is empty")
}
