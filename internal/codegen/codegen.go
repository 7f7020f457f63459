package codegen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet is the 62-symbol character set short codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the code length used when none is configured.
const DefaultLength = 6

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// Generator produces randomized candidate short codes. It makes no
// uniqueness guarantee; collision handling belongs to the caller.
type Generator struct {
	length int
}

// NewGenerator creates a generator with a fixed code length (DefaultLength
// if length <= 0).
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Generate returns a random code: independent uniform draws from Alphabet,
// one per position.
func (g *Generator) Generate() (string, error) {
	var b strings.Builder
	b.Grow(g.length)
	for i := 0; i < g.length; i++ {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		b.WriteByte(Alphabet[idx.Int64()])
	}
	return b.String(), nil
}
