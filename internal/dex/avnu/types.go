package avnu

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type QuoteParams struct {
	SellToken      string
	BuyToken       string
	SellAmount     string
	Taker          string
	Size           int
	ExcludeSources []string
}

// Quote is one priced route proposal. Only QuoteID is consumed downstream.
type Quote struct {
	QuoteID          string `json:"quoteId"`
	SellTokenAddress string `json:"sellTokenAddress"`
	SellAmount       string `json:"sellAmount"`
	BuyTokenAddress  string `json:"buyTokenAddress"`
	BuyAmount        string `json:"buyAmount"`
}

type quotesResponse struct {
	Quotes []Quote `json:"quotes"`
}

type BuildParams struct {
	QuoteID        string
	Taker          string
	Slippage       float64
	IncludeApprove bool
}

type buildRequest struct {
	QuoteID        string  `json:"quoteId"`
	TakerAddress   string  `json:"takerAddress"`
	Slippage       float64 `json:"slippage"`
	IncludeApprove bool    `json:"includeApprove"`
}

// Call is a planned contract invocation with hex encoded address and calldata.
type Call struct {
	ContractAddress string   `json:"contractAddress"`
	Entrypoint      string   `json:"entrypoint"`
	Calldata        []string `json:"calldata"`
}

type BuildResponse struct {
	ChainID string `json:"chainId"`
	Calls   []Call `json:"calls"`
}

// APIError is returned for any non-2xx aggregator response.
type APIError struct {
	Method   string
	Path     string
	Status   int
	Messages []string
	Body     string
}

func (e *APIError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("avnu %s %s status %d: %s", e.Method, e.Path, e.Status, msg)
}

func newAPIError(req *http.Request, status int, raw []byte) *APIError {
	apiErr := &APIError{Method: req.Method, Path: req.URL.Path, Status: status, Body: string(raw)}
	var body struct {
		Messages []string `json:"messages"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Messages = body.Messages
	}
	return apiErr
}
