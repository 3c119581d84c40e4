// Package starknet holds the Starknet call encoding and the JSON-RPC account used to submit multi-call invokes.
package starknet

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// FieldPrime is the Stark field modulus, 2^251 + 17*2^192 + 1. Every felt is below it.
var FieldPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	p.Add(p, new(big.Int).Lsh(big.NewInt(17), 192))
	return p.Add(p, big.NewInt(1))
}()

var ErrInvalidFelt = errors.New("invalid felt")

// ParseFelt parses a hex word, with or without 0x prefix, into a field element.
func ParseFelt(s string) (*big.Int, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if digits == "" {
		return nil, fmt.Errorf("%w: empty value %q", ErrInvalidFelt, s)
	}
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok || digits[0] == '+' || digits[0] == '-' {
		return nil, fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidFelt, s)
	}
	if v.Cmp(FieldPrime) >= 0 {
		return nil, fmt.Errorf("%w: %q exceeds field prime", ErrInvalidFelt, s)
	}
	return v, nil
}

// ParseFelts parses every word in order, reporting the first bad index.
func ParseFelts(words []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(words))
	for i, w := range words {
		v, err := ParseFelt(w)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func EncodeFelt(v *big.Int) string {
	if v == nil {
		return "0x0"
	}
	return hexutil.EncodeBig(v)
}

func EncodeFelts(vs []*big.Int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = EncodeFelt(v)
	}
	return out
}
