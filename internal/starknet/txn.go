package starknet

import (
	"fmt"
	"math/big"
)

const (
	TxnTypeInvoke = "INVOKE"
	TxnVersion3   = "0x3"
	// QueryVersion3 marks a v3 invoke built only for fee estimation; nodes refuse to include it.
	QueryVersion3 = "0x100000000000000000000000000000003"
	DAModeL1      = "L1"
	DAModeL2      = "L2"
)

type ResourceBounds struct {
	MaxAmount       string `json:"max_amount"`
	MaxPricePerUnit string `json:"max_price_per_unit"`
}

type ResourceBoundsMapping struct {
	L1Gas     ResourceBounds `json:"l1_gas"`
	L1DataGas ResourceBounds `json:"l1_data_gas"`
	L2Gas     ResourceBounds `json:"l2_gas"`
}

// InvokeTxnV3 is the broadcasted invoke transaction body of starknet_addInvokeTransaction.
type InvokeTxnV3 struct {
	Type                      string                `json:"type"`
	SenderAddress             string                `json:"sender_address"`
	Calldata                  []string              `json:"calldata"`
	Version                   string                `json:"version"`
	Signature                 []string              `json:"signature"`
	Nonce                     string                `json:"nonce"`
	ResourceBounds            ResourceBoundsMapping `json:"resource_bounds"`
	Tip                       string                `json:"tip"`
	PaymasterData             []string              `json:"paymaster_data"`
	AccountDeploymentData     []string              `json:"account_deployment_data"`
	NonceDataAvailabilityMode string                `json:"nonce_data_availability_mode"`
	FeeDataAvailabilityMode   string                `json:"fee_data_availability_mode"`
}

// FeeEstimate mirrors the node's estimate, all quantities hex encoded.
type FeeEstimate struct {
	L1GasConsumed     string `json:"l1_gas_consumed"`
	L1GasPrice        string `json:"l1_gas_price"`
	L2GasConsumed     string `json:"l2_gas_consumed"`
	L2GasPrice        string `json:"l2_gas_price"`
	L1DataGasConsumed string `json:"l1_data_gas_consumed"`
	L1DataGasPrice    string `json:"l1_data_gas_price"`
	OverallFee        string `json:"overall_fee"`
	Unit              string `json:"unit"`
}

type addInvokeResult struct {
	TransactionHash string `json:"transaction_hash"`
}

// Finality and execution states reported by starknet_getTransactionStatus.
const (
	StatusReceived     = "RECEIVED"
	StatusRejected     = "REJECTED"
	StatusAcceptedOnL2 = "ACCEPTED_ON_L2"
	StatusAcceptedOnL1 = "ACCEPTED_ON_L1"
	ExecSucceeded      = "SUCCEEDED"
	ExecReverted       = "REVERTED"
)

type TxStatus struct {
	FinalityStatus  string `json:"finality_status"`
	ExecutionStatus string `json:"execution_status,omitempty"`
	FailureReason   string `json:"failure_reason,omitempty"`
}

func (s TxStatus) Accepted() bool {
	return s.FinalityStatus == StatusAcceptedOnL2 || s.FinalityStatus == StatusAcceptedOnL1
}

// TxError reports a transaction the network rejected or reverted.
type TxError struct {
	Hash   string
	Status TxStatus
}

func (e *TxError) Error() string {
	state := e.Status.FinalityStatus
	if e.Status.ExecutionStatus != "" {
		state += "/" + e.Status.ExecutionStatus
	}
	if e.Status.FailureReason != "" {
		return fmt.Sprintf("tx %s %s: %s", e.Hash, state, e.Status.FailureReason)
	}
	return fmt.Sprintf("tx %s %s", e.Hash, state)
}

// scaleBounds turns an estimate into resource bounds padded by the given multipliers.
func scaleBounds(est FeeEstimate, amountMul, priceMul float64) (ResourceBoundsMapping, error) {
	bound := func(amount, price string) (ResourceBounds, error) {
		a, err := parseQuantity(amount)
		if err != nil {
			return ResourceBounds{}, err
		}
		p, err := parseQuantity(price)
		if err != nil {
			return ResourceBounds{}, err
		}
		return ResourceBounds{
			MaxAmount:       EncodeFelt(mulFloat(a, amountMul)),
			MaxPricePerUnit: EncodeFelt(mulFloat(p, priceMul)),
		}, nil
	}
	var out ResourceBoundsMapping
	var err error
	if out.L1Gas, err = bound(est.L1GasConsumed, est.L1GasPrice); err != nil {
		return out, fmt.Errorf("l1 gas: %w", err)
	}
	if out.L1DataGas, err = bound(est.L1DataGasConsumed, est.L1DataGasPrice); err != nil {
		return out, fmt.Errorf("l1 data gas: %w", err)
	}
	if out.L2Gas, err = bound(est.L2GasConsumed, est.L2GasPrice); err != nil {
		return out, fmt.Errorf("l2 gas: %w", err)
	}
	return out, nil
}

func zeroBounds() ResourceBoundsMapping {
	zero := ResourceBounds{MaxAmount: "0x0", MaxPricePerUnit: "0x0"}
	return ResourceBoundsMapping{L1Gas: zero, L1DataGas: zero, L2Gas: zero}
}

// parseQuantity accepts an absent field as zero.
func parseQuantity(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	return ParseFelt(s)
}

func mulFloat(v *big.Int, m float64) *big.Int {
	f := new(big.Float).SetInt(v)
	f.Mul(f, big.NewFloat(m))
	out, _ := f.Int(nil)
	return out
}
