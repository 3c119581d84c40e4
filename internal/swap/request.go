// Package swap runs the quote, build and execute cycle against the aggregator.
package swap

import "time"

const (
	// DefaultQuoteCount caps the candidate routes requested per quote.
	DefaultQuoteCount = 3
	// DefaultCooldown is the pause after a failed cycle.
	DefaultCooldown = 10 * time.Second
	// MinCalls is the approval plus swap call pair every build must return.
	MinCalls = 2
)

// DefaultExcludeSources is the liquidity source blocklist sent with every quote request.
var DefaultExcludeSources = []string{
	"10kSwap", "Ekubo", "Haiko", "HaikoStrategy", "JediSwap", "JediSwapCL",
	"MySwap", "MySwapCL", "SithSwap", "StarkDefi", "StarkWare",
}

// Request is the fixed swap every cycle repeats.
type Request struct {
	SellToken      string
	BuyToken       string
	SellAmount     string
	Taker          string
	Slippage       float64
	QuoteCount     int
	ExcludeSources []string
}
