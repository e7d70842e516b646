// Package shortcode derives fixed-width base-62 short codes from store-assigned identifiers.
package shortcode

import (
	"errors"
	"fmt"
	"strings"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
)

// Alphabet is the digit ordering: digits, then upper case, then lower case.
// Its first character is the zero digit used for left padding.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Width is the length of every generated code.
const Width = 6

const base = uint64(len(Alphabet))

// MaxID is the largest identifier that fits in Width digits (62^6 - 1).
const MaxID uint64 = 56800235583

// ErrInvalidID is returned for the zero identifier, which stores never assign.
var ErrInvalidID = errors.New("identifier must be positive")

// Encode converts id to its Width-character base-62 code.
// Identifiers above MaxID fail with ErrCodespaceExhausted instead of wrapping.
func Encode(id uint64) (string, error) {
	if id == 0 {
		return "", ErrInvalidID
	}
	if id > MaxID {
		return "", fmt.Errorf("%w: id %d exceeds %d", customerrors.ErrCodespaceExhausted, id, MaxID)
	}

	code := make([]byte, Width)
	for i := Width - 1; i >= 0; i-- {
		code[i] = Alphabet[id%base]
		id /= base
	}
	return string(code), nil
}

// Decode is the inverse of Encode. It reports false for strings that are not
// a Width-character code over Alphabet.
func Decode(code string) (uint64, bool) {
	if !Valid(code) {
		return 0, false
	}
	var id uint64
	for i := 0; i < len(code); i++ {
		id = id*base + uint64(strings.IndexByte(Alphabet, code[i]))
	}
	return id, true
}

// Valid reports whether code has the shape of a generated code.
func Valid(code string) bool {
	if len(code) != Width {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(Alphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}
