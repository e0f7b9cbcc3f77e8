// Package shortcode generates and validates short alphanumeric codes.
//
// Generation gives no uniqueness guarantee by itself; the record store
// enforces uniqueness at insertion time.
package shortcode

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// CodeLength is the length of generated codes.
const CodeLength = 6

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Generator generates random short codes.
type Generator struct {
	alphabet string
	length   int
}

// NewGenerator creates a new short code generator.
func NewGenerator() *Generator {
	return &Generator{
		alphabet: alphabet,
		length:   CodeLength,
	}
}

// Generate creates a new random 6-character code drawn uniformly from the
// 62-character alphanumeric alphabet.
func (g *Generator) Generate() string {
	b := make([]byte, g.length)
	alphabetLen := big.NewInt(int64(len(g.alphabet)))

	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			// Should never happen with crypto/rand
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = g.alphabet[n.Int64()]
	}

	return string(b)
}

// Validate reports whether a caller-supplied custom code is acceptable:
// non-empty and strictly alphanumeric.
func Validate(code string) bool {
	return codePattern.MatchString(code)
}
