package starknet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
)

var mask250 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))

// StarknetKeccak is keccak256 truncated to the low 250 bits.
func StarknetKeccak(data []byte) *big.Int {
	v := new(big.Int).SetBytes(crypto.Keccak256(data))
	return v.And(v, mask250)
}

// SelectorFromName derives the entrypoint selector for a contract function name.
func SelectorFromName(name string) *big.Int {
	if name == "__default__" || name == "__l1_default__" {
		return new(big.Int)
	}
	return StarknetKeccak([]byte(name))
}
