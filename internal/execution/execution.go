// Package execution turns aggregator call lists into confirmed Starknet transactions.
package execution

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"avnu-swapbot/internal/dex/avnu"
	"avnu-swapbot/internal/metrics"
	"avnu-swapbot/internal/starknet"
	"avnu-swapbot/internal/swap"
)

// Account is the signing and submission collaborator.
type Account interface {
	Nonce(ctx context.Context) (*big.Int, error)
	Execute(ctx context.Context, nonce *big.Int, calls []starknet.Call) (string, error)
	WaitForTx(ctx context.Context, hash string) error
}

// Executor submits one multi-call transaction per Execute and blocks until it is accepted.
type Executor struct {
	account        Account
	log            zerolog.Logger
	confirmTimeout time.Duration
}

type Option func(*Executor)

// WithConfirmTimeout bounds the confirmation wait. It cannot retract a submitted transaction.
func WithConfirmTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.confirmTimeout = d
		}
	}
}

func NewExecutor(account Account, log zerolog.Logger, opts ...Option) *Executor {
	executor := &Executor{account: account, log: log}
	for _, opt := range opts {
		opt(executor)
	}
	return executor
}

// Translate converts aggregator calls into native calls, preserving order.
func Translate(calls []avnu.Call) ([]starknet.Call, error) {
	out := make([]starknet.Call, 0, len(calls))
	for i, c := range calls {
		native, err := starknet.NewCall(c.ContractAddress, c.Entrypoint, c.Calldata)
		if err != nil {
			return nil, fmt.Errorf("call %d: %w", i, err)
		}
		out = append(out, native)
	}
	return out, nil
}

// Execute returns the confirmed transaction hash. Errors after submission carry the hash.
func (executor *Executor) Execute(ctx context.Context, calls []avnu.Call) (string, error) {
	nonce, err := executor.account.Nonce(ctx)
	if err != nil {
		return "", swap.NewStageError(swap.ExecutionFailed, fmt.Errorf("nonce: %w", err))
	}
	executor.log.Info().Str("nonce", nonce.String()).Msg("account nonce")

	native, err := Translate(calls)
	if err != nil {
		return "", swap.NewStageError(swap.ExecutionFailed, fmt.Errorf("translate: %w", err))
	}

	hash, err := executor.account.Execute(ctx, nonce, native)
	if err != nil {
		return "", swap.NewStageError(swap.ExecutionFailed, fmt.Errorf("submit: %w", err))
	}
	metrics.SubmittedTotal.Inc()
	executor.log.Info().Str("tx", hash).Int("calls", len(native)).Msg("transaction submitted")

	waitCtx := ctx
	if executor.confirmTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, executor.confirmTimeout)
		defer cancel()
	}
	if err := executor.account.WaitForTx(waitCtx, hash); err != nil {
		return hash, &swap.StageError{Kind: swap.ExecutionFailed, TxHash: hash, Err: fmt.Errorf("confirm: %w", err)}
	}
	executor.log.Info().Str("tx", hash).Msg("transaction accepted")
	return hash, nil
}
