package swap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"avnu-swapbot/internal/dex/avnu"
)

// BuildSource is the aggregator build endpoint.
type BuildSource interface {
	Build(ctx context.Context, p avnu.BuildParams) (*avnu.BuildResponse, error)
}

// TxBuilder exchanges a quote id for the call list the account executes.
type TxBuilder struct {
	src      BuildSource
	taker    string
	slippage float64
	log      zerolog.Logger
}

func NewTxBuilder(src BuildSource, req Request, log zerolog.Logger) *TxBuilder {
	return &TxBuilder{src: src, taker: req.Taker, slippage: req.Slippage, log: log}
}

// Build returns the aggregator's calls in order, approval first. Call contents are not inspected.
func (b *TxBuilder) Build(ctx context.Context, quoteID string) ([]avnu.Call, error) {
	resp, err := b.src.Build(ctx, avnu.BuildParams{
		QuoteID:        quoteID,
		Taker:          b.taker,
		Slippage:       b.slippage,
		IncludeApprove: true,
	})
	if err != nil {
		return nil, NewStageError(BuildFailed, err)
	}
	if resp == nil || len(resp.Calls) < MinCalls {
		n := 0
		if resp != nil {
			n = len(resp.Calls)
		}
		return nil, NewStageError(BuildFailed, fmt.Errorf("expected at least %d calls, got %d", MinCalls, n))
	}
	for i, c := range resp.Calls {
		if c.ContractAddress == "" || c.Entrypoint == "" {
			return nil, NewStageError(BuildFailed, fmt.Errorf("call %d is missing contract address or entrypoint", i))
		}
	}
	b.log.Info().Str("quote", quoteID).Int("calls", len(resp.Calls)).Msg("transaction built")
	return resp.Calls, nil
}
