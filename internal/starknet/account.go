package starknet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// nodeAPI is the subset of Node the account drives.
type nodeAPI interface {
	ChainID(ctx context.Context) (string, error)
	Nonce(ctx context.Context, address string) (*big.Int, error)
	EstimateFee(ctx context.Context, tx InvokeTxnV3) (FeeEstimate, error)
	AddInvokeTransaction(ctx context.Context, tx InvokeTxnV3) (string, error)
	TransactionStatus(ctx context.Context, hash string) (TxStatus, error)
}

// Signer produces the account signature for a fully bounded invoke. Keys never enter this process.
type Signer interface {
	SignInvoke(ctx context.Context, chainID string, tx InvokeTxnV3) ([]*big.Int, error)
}

// AccountOptions tunes submission. The zero value targets a Cairo 1 account.
type AccountOptions struct {
	Cairo0              bool
	PollInterval        time.Duration
	FeeAmountMultiplier float64
	FeePriceMultiplier  float64
}

// Account submits multi-call v3 invokes from one address and waits for them.
type Account struct {
	node    nodeAPI
	address string
	signer  Signer
	opts    AccountOptions

	mu      sync.Mutex
	chainID string
}

func NewAccount(node nodeAPI, address string, signer Signer, opts AccountOptions) (*Account, error) {
	addr, err := ParseFelt(address)
	if err != nil {
		return nil, fmt.Errorf("account address: %w", err)
	}
	if signer == nil {
		return nil, errors.New("account signer not set")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.FeeAmountMultiplier <= 0 {
		opts.FeeAmountMultiplier = 1.5
	}
	if opts.FeePriceMultiplier <= 0 {
		opts.FeePriceMultiplier = 1.5
	}
	return &Account{node: node, address: EncodeFelt(addr), signer: signer, opts: opts}, nil
}

func (a *Account) Address() string { return a.address }

func (a *Account) Nonce(ctx context.Context) (*big.Int, error) {
	return a.node.Nonce(ctx, a.address)
}

// Execute submits calls as one atomic invoke with estimated resource bounds and returns the transaction hash.
// A nil nonce is read from the node.
func (a *Account) Execute(ctx context.Context, nonce *big.Int, calls []Call) (string, error) {
	if len(calls) == 0 {
		return "", errors.New("no calls to execute")
	}
	if nonce == nil {
		var err error
		if nonce, err = a.node.Nonce(ctx, a.address); err != nil {
			return "", err
		}
	}
	tx := InvokeTxnV3{
		Type:                      TxnTypeInvoke,
		SenderAddress:             a.address,
		Calldata:                  EncodeFelts(ExecuteCalldata(calls, a.opts.Cairo0)),
		Version:                   QueryVersion3,
		Signature:                 []string{},
		Nonce:                     EncodeFelt(nonce),
		ResourceBounds:            zeroBounds(),
		Tip:                       "0x0",
		PaymasterData:             []string{},
		AccountDeploymentData:     []string{},
		NonceDataAvailabilityMode: DAModeL1,
		FeeDataAvailabilityMode:   DAModeL1,
	}

	est, err := a.node.EstimateFee(ctx, tx)
	if err != nil {
		return "", err
	}
	if tx.ResourceBounds, err = scaleBounds(est, a.opts.FeeAmountMultiplier, a.opts.FeePriceMultiplier); err != nil {
		return "", fmt.Errorf("resource bounds: %w", err)
	}
	tx.Version = TxnVersion3

	chainID, err := a.chain(ctx)
	if err != nil {
		return "", err
	}
	sig, err := a.signer.SignInvoke(ctx, chainID, tx)
	if err != nil {
		return "", fmt.Errorf("sign invoke: %w", err)
	}
	tx.Signature = EncodeFelts(sig)

	return a.node.AddInvokeTransaction(ctx, tx)
}

// WaitForTx polls until the transaction is accepted, rejected or reverted, or ctx ends.
// An unknown hash is treated as not yet propagated.
func (a *Account) WaitForTx(ctx context.Context, hash string) error {
	ticker := time.NewTicker(a.opts.PollInterval)
	defer ticker.Stop()

	for {
		status, err := a.node.TransactionStatus(ctx, hash)
		switch {
		case err != nil && ctx.Err() != nil:
			return fmt.Errorf("wait for tx %s: %w", hash, ctx.Err())
		case err != nil && !IsTxnHashNotFound(err):
			return err
		case err != nil:
			// not propagated yet
		case status.ExecutionStatus == ExecReverted || status.FinalityStatus == StatusRejected:
			return &TxError{Hash: hash, Status: status}
		case status.Accepted():
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for tx %s: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (a *Account) chain(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.chainID != "" {
		return a.chainID, nil
	}
	id, err := a.node.ChainID(ctx)
	if err != nil {
		return "", err
	}
	a.chainID = id
	return id, nil
}
