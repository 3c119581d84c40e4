package swap

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"avnu-swapbot/internal/dex/avnu"
)

// QuoteSource is the aggregator quote endpoint.
type QuoteSource interface {
	Quotes(ctx context.Context, p avnu.QuoteParams) ([]avnu.Quote, error)
}

// QuoteFetcher asks for the best route of the configured swap.
type QuoteFetcher struct {
	src QuoteSource
	req Request
	log zerolog.Logger
}

func NewQuoteFetcher(src QuoteSource, req Request, log zerolog.Logger) *QuoteFetcher {
	if req.QuoteCount <= 0 {
		req.QuoteCount = DefaultQuoteCount
	}
	if req.ExcludeSources == nil {
		req.ExcludeSources = DefaultExcludeSources
	}
	return &QuoteFetcher{src: src, req: req, log: log}
}

// Fetch returns the id of the first, best ranked quote.
func (f *QuoteFetcher) Fetch(ctx context.Context) (string, error) {
	quotes, err := f.src.Quotes(ctx, avnu.QuoteParams{
		SellToken:      f.req.SellToken,
		BuyToken:       f.req.BuyToken,
		SellAmount:     f.req.SellAmount,
		Taker:          f.req.Taker,
		Size:           f.req.QuoteCount,
		ExcludeSources: f.req.ExcludeSources,
	})
	if err != nil {
		return "", NewStageError(QuoteUnavailable, err)
	}
	if len(quotes) == 0 {
		return "", NewStageError(QuoteUnavailable, errors.New("aggregator returned no quotes"))
	}
	best := quotes[0]
	if best.QuoteID == "" {
		return "", NewStageError(QuoteUnavailable, errors.New("best quote has no id"))
	}
	f.log.Info().Str("quote", best.QuoteID).Str("buy_amount", best.BuyAmount).Int("candidates", len(quotes)).Msg("quote fetched")
	return best.QuoteID, nil
}
