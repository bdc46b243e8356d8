// Package genpass generates random passwords from configurable character classes.
package genpass

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/nbutton23/zxcvbn-go"
)

// Character classes. Glyphs that are easy to confuse (0/O, 1/l) are left out.
const (
	Upper   = "ABCDEFGHIJKMNPQRSTUVWXYZ"
	Lower   = "abcdefghijkmnpqrstuvwxyz"
	Numbers = "123456789"
	Symbols = "!@#$%^&*-_=+?/"
)

const (
	MinLength = 4
	MaxLength = 255
)

var (
	ErrNoCharset = errors.New("genpass: no character set selected")
	ErrTooShort  = errors.New("genpass: password length too short for selected character types")
)

// Options selects the password length and which classes to draw from.
type Options struct {
	Length int
	Upper  bool
	Lower  bool
	Number bool
	Symbol bool
}

// DefaultOptions is a 16 character password using every class.
func DefaultOptions() Options {
	return Options{Length: 16, Upper: true, Lower: true, Number: true, Symbol: true}
}

// Password is a generated password and its zxcvbn strength score (0 to 4, 4 is best).
type Password struct {
	Value string
	Score int
}

// Generate returns a password with at least one character from every
// selected class. Length is clamped to [MinLength, MaxLength].
func Generate(opts Options) (Password, error) {
	return generate(rand.Reader, opts)
}

func generate(rnd io.Reader, opts Options) (Password, error) {
	length := clamp(opts.Length, MinLength, MaxLength)

	classes := []struct {
		set string
		use bool
	}{
		{Upper, opts.Upper},
		{Lower, opts.Lower},
		{Numbers, opts.Number},
		{Symbols, opts.Symbol},
	}

	var charset []byte
	var out []byte
	for _, c := range classes {
		if !c.use {
			continue
		}
		charset = append(charset, c.set...)
		ch, err := pick(rnd, c.set)
		if err != nil {
			return Password{}, err
		}
		out = append(out, ch)
	}
	if len(charset) == 0 {
		return Password{}, ErrNoCharset
	}
	if length <= len(out) {
		return Password{}, ErrTooShort
	}

	for len(out) < length {
		ch, err := pick(rnd, string(charset))
		if err != nil {
			return Password{}, err
		}
		out = append(out, ch)
	}
	if err := shuffle(rnd, out); err != nil {
		return Password{}, err
	}

	value := string(out)
	return Password{Value: value, Score: zxcvbn.PasswordStrength(value, nil).Score}, nil
}

func pick(rnd io.Reader, set string) (byte, error) {
	i, err := randIndex(rnd, len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func shuffle(rnd io.Reader, b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randIndex(rnd, i+1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func randIndex(rnd io.Reader, n int) (int, error) {
	v, err := rand.Int(rnd, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("genpass: random source: %w", err)
	}
	return int(v.Int64()), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
