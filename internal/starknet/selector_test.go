package starknet

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorFromName(t *testing.T) {
	assert.Equal(t, "0x83afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e", EncodeFelt(SelectorFromName("transfer")))
	assert.Equal(t, "0x219209e083275171774dab1df80982e9df2096516f06319c5c6d71ae0a8480c", EncodeFelt(SelectorFromName("approve")))
	assert.Equal(t, "0x15543c3708653cda9d418b4ccd3be11368e40636c10c44b18cfe756b6d88b29", EncodeFelt(SelectorFromName("swap")))
	assert.NotEqual(t, 0, SelectorFromName("approve").Cmp(SelectorFromName("swap")))
}

func TestSelectorDefaultEntrypoints(t *testing.T) {
	assert.Equal(t, 0, SelectorFromName("__default__").Sign())
	assert.Equal(t, 0, SelectorFromName("__l1_default__").Sign())
}

func TestSelectorFitsIn250Bits(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 250)
	for _, name := range []string{"approve", "multi_route_swap", "swap_exact_token_to", "__execute__"} {
		assert.Equal(t, -1, SelectorFromName(name).Cmp(limit), name)
	}
}
