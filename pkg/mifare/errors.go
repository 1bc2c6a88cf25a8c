package mifare

import (
	"errors"
	"fmt"
)

// Status words returned by PC/SC readers for storage-card pseudo-APDUs.
const (
	SWSuccess              = 0x9000 // success
	SWFailed               = 0x6300 // operation failed (bad key, auth failure)
	SWSecurityNotSatisfied = 0x6982 // read attempted without authentication
	SWFunctionNotSupported = 0x6A81 // reader does not support the command
	SWWrongLength          = 0x6700 // wrong Lc/Le
)

// SizeError reports a dump whose length is neither 1024 nor 4096 bytes.
type SizeError struct {
	Length int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("dump is %d bytes, expected %d (1K) or %d (4K)", e.Length, DumpSize1K, DumpSize4K)
}

// IsSizeError checks if an error is an invalid dump size error.
func IsSizeError(err error) bool {
	var se *SizeError
	return errors.As(err, &se)
}

// SWError represents a status word error from the reader.
type SWError struct {
	Ins byte   // Command INS byte
	SW  uint16 // Status word
}

func (e *SWError) Error() string {
	return fmt.Sprintf("card command 0x%02X failed with SW=0x%04X (%s)", e.Ins, e.SW, swDescription(e.SW))
}

// swDescription returns a human-readable description of a status word.
func swDescription(sw uint16) string {
	switch sw {
	case SWSuccess:
		return "success"
	case SWFailed:
		return "operation failed"
	case SWSecurityNotSatisfied:
		return "security not satisfied"
	case SWFunctionNotSupported:
		return "function not supported"
	case SWWrongLength:
		return "wrong length"
	default:
		return "unknown error"
	}
}

// IsAuthError checks if an error is an authentication-related status
// word error (wrong key, or a read before authentication).
func IsAuthError(err error) bool {
	var swErr *SWError
	if errors.As(err, &swErr) {
		return swErr.SW == SWFailed || swErr.SW == SWSecurityNotSatisfied
	}
	return false
}
