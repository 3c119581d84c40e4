package starknet

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/crypto"
	"github.com/NethermindEth/juno/core/felt"
)

var (
	invokePrefix   = new(big.Int).SetBytes([]byte("invoke"))
	resourceL1Gas  = new(big.Int).SetBytes([]byte("L1_GAS"))
	resourceL2Gas  = new(big.Int).SetBytes([]byte("L2_GAS"))
	resourceL1Data = new(big.Int).SetBytes([]byte("L1_DATA"))
	maxBoundAmount = new(big.Int).Lsh(big.NewInt(1), 64)
	maxBoundPrice  = new(big.Int).Lsh(big.NewInt(1), 128)
	daModeL1       = big.NewInt(0)
	daModeL2       = big.NewInt(1)
)

// InvokeHashV3 computes the Poseidon transaction hash of a v3 invoke, the message the account signs.
func InvokeHashV3(chainID string, tx InvokeTxnV3) (*big.Int, error) {
	chain, err := ParseFelt(chainID)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	version, err := ParseFelt(tx.Version)
	if err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}
	sender, err := ParseFelt(tx.SenderAddress)
	if err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	nonce, err := ParseFelt(tx.Nonce)
	if err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	tip, err := parseQuantity(tx.Tip)
	if err != nil {
		return nil, fmt.Errorf("tip: %w", err)
	}
	calldata, err := ParseFelts(tx.Calldata)
	if err != nil {
		return nil, fmt.Errorf("calldata: %w", err)
	}
	paymaster, err := ParseFelts(tx.PaymasterData)
	if err != nil {
		return nil, fmt.Errorf("paymaster data: %w", err)
	}
	deployment, err := ParseFelts(tx.AccountDeploymentData)
	if err != nil {
		return nil, fmt.Errorf("account deployment data: %w", err)
	}
	fees, err := feeFieldsHash(tip, tx.ResourceBounds)
	if err != nil {
		return nil, err
	}
	modes, err := dataAvailabilityModes(tx.NonceDataAvailabilityMode, tx.FeeDataAvailabilityMode)
	if err != nil {
		return nil, err
	}

	return poseidon(
		invokePrefix,
		version,
		sender,
		fees,
		poseidon(paymaster...),
		chain,
		nonce,
		modes,
		poseidon(deployment...),
		poseidon(calldata...),
	), nil
}

func feeFieldsHash(tip *big.Int, rb ResourceBoundsMapping) (*big.Int, error) {
	l1, err := packBound(resourceL1Gas, rb.L1Gas)
	if err != nil {
		return nil, fmt.Errorf("l1 gas bound: %w", err)
	}
	l2, err := packBound(resourceL2Gas, rb.L2Gas)
	if err != nil {
		return nil, fmt.Errorf("l2 gas bound: %w", err)
	}
	l1Data, err := packBound(resourceL1Data, rb.L1DataGas)
	if err != nil {
		return nil, fmt.Errorf("l1 data gas bound: %w", err)
	}
	return poseidon(tip, l1, l2, l1Data), nil
}

// packBound encodes a bound as name<<192 | max_amount<<128 | max_price_per_unit.
func packBound(name *big.Int, b ResourceBounds) (*big.Int, error) {
	amount, err := parseQuantity(b.MaxAmount)
	if err != nil {
		return nil, err
	}
	price, err := parseQuantity(b.MaxPricePerUnit)
	if err != nil {
		return nil, err
	}
	if amount.Cmp(maxBoundAmount) >= 0 {
		return nil, fmt.Errorf("max amount %s overflows u64", EncodeFelt(amount))
	}
	if price.Cmp(maxBoundPrice) >= 0 {
		return nil, fmt.Errorf("max price %s overflows u128", EncodeFelt(price))
	}
	out := new(big.Int).Lsh(name, 192)
	out.Or(out, new(big.Int).Lsh(amount, 128))
	return out.Or(out, price), nil
}

func dataAvailabilityModes(nonceMode, feeMode string) (*big.Int, error) {
	mode := func(s string) (*big.Int, error) {
		switch s {
		case DAModeL1, "":
			return daModeL1, nil
		case DAModeL2:
			return daModeL2, nil
		}
		return nil, fmt.Errorf("unknown data availability mode %q", s)
	}
	n, err := mode(nonceMode)
	if err != nil {
		return nil, err
	}
	f, err := mode(feeMode)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Or(new(big.Int).Lsh(n, 32), f), nil
}

func poseidon(vs ...*big.Int) *big.Int {
	elems := make([]*felt.Felt, len(vs))
	for i, v := range vs {
		elems[i] = new(felt.Felt).SetBigInt(v)
	}
	h := crypto.PoseidonArray(elems...)
	return h.BigInt(new(big.Int))
}
