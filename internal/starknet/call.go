package starknet

import (
	"fmt"
	"math/big"
)

// Call is a contract invocation in the chain's native representation.
type Call struct {
	To       *big.Int
	Selector *big.Int
	Calldata []*big.Int
}

// NewCall translates a hex address, entrypoint name and hex calldata into a Call.
func NewCall(address, entrypoint string, calldata []string) (Call, error) {
	to, err := ParseFelt(address)
	if err != nil {
		return Call{}, fmt.Errorf("contract address: %w", err)
	}
	if entrypoint == "" {
		return Call{}, fmt.Errorf("empty entrypoint for %s", address)
	}
	data, err := ParseFelts(calldata)
	if err != nil {
		return Call{}, fmt.Errorf("%s calldata: %w", entrypoint, err)
	}
	return Call{To: to, Selector: SelectorFromName(entrypoint), Calldata: data}, nil
}

// ExecuteCalldata flattens calls into the account __execute__ calldata.
//
// Cairo 1 accounts take [n, (to, selector, len, data...)...]. Legacy Cairo 0 accounts take a call array of
// (to, selector, offset, len) followed by the concatenated calldata.
func ExecuteCalldata(calls []Call, cairo0 bool) []*big.Int {
	out := []*big.Int{big.NewInt(int64(len(calls)))}
	if cairo0 {
		var flat []*big.Int
		for _, c := range calls {
			out = append(out, c.To, c.Selector, big.NewInt(int64(len(flat))), big.NewInt(int64(len(c.Calldata))))
			flat = append(flat, c.Calldata...)
		}
		out = append(out, big.NewInt(int64(len(flat))))
		return append(out, flat...)
	}
	for _, c := range calls {
		out = append(out, c.To, c.Selector, big.NewInt(int64(len(c.Calldata))))
		out = append(out, c.Calldata...)
	}
	return out
}
