// Package avnu talks to the AVNU swap aggregator on Starknet.
package avnu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBase       = "https://starknet.api.avnu.fi"
	DefaultQuotePath  = "/internal/swap/quotes-with-prices"
	DefaultBuildPath  = "/swap/v2/build"
	DefaultIntegrator = "AVNU Portal"
)

// Headers mirrors the browser presentation headers the web app sends.
type Headers struct {
	AcceptLanguage  string
	SecChUa         string
	SecChUaPlatform string
	UserAgent       string
	Origin          string
	Referer         string
}

type Client struct {
	Base       string
	QuotePath  string
	BuildPath  string
	Integrator string
	Headers    Headers
	Http       *http.Client
}

func NewClient(base string, headers Headers, timeout time.Duration) *Client {
	if base == "" {
		base = DefaultBase
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if headers.Origin == "" {
		headers.Origin = "https://app.avnu.fi"
	}
	if headers.Referer == "" {
		headers.Referer = "https://app.avnu.fi/"
	}
	return &Client{
		Base:       strings.TrimSuffix(base, "/"),
		QuotePath:  DefaultQuotePath,
		BuildPath:  DefaultBuildPath,
		Integrator: DefaultIntegrator,
		Headers:    headers,
		Http:       &http.Client{Timeout: timeout},
	}
}

// Quotes returns the ranked quotes for a sell order, best first.
func (c *Client) Quotes(ctx context.Context, p QuoteParams) ([]Quote, error) {
	q := url.Values{}
	q.Set("sellTokenAddress", p.SellToken)
	q.Set("buyTokenAddress", p.BuyToken)
	q.Set("sellAmount", p.SellAmount)
	q.Set("takerAddress", p.Taker)
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	for _, src := range p.ExcludeSources {
		q.Add("excludeSources", src)
	}
	if c.Integrator != "" {
		q.Set("integratorName", c.Integrator)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+c.QuotePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("quote request: %w", err)
	}
	c.decorate(req)
	req.Header.Set("Accept", "*/*")

	var out quotesResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Quotes, nil
}

// Build turns a quote into the call list the taker account must execute.
func (c *Client) Build(ctx context.Context, p BuildParams) (*BuildResponse, error) {
	body, err := json.Marshal(buildRequest{
		QuoteID:        p.QuoteID,
		TakerAddress:   p.Taker,
		Slippage:       p.Slippage,
		IncludeApprove: p.IncludeApprove,
	})
	if err != nil {
		return nil, fmt.Errorf("encode build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+c.BuildPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.decorate(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ask-Signature", "true")

	var out BuildResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) decorate(req *http.Request) {
	h := c.Headers
	set := func(k, v string) {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	set("Accept-Language", h.AcceptLanguage)
	set("Origin", h.Origin)
	set("Referer", h.Referer)
	set("Sec-Ch-Ua", h.SecChUa)
	set("Sec-Ch-Ua-Mobile", "?0")
	set("Sec-Ch-Ua-Platform", h.SecChUaPlatform)
	set("Sec-Fetch-Dest", "empty")
	set("Sec-Fetch-Mode", "cors")
	set("Sec-Fetch-Site", "same-site")
	set("Sec-Gpc", "1")
	set("User-Agent", h.UserAgent)
}

// do sends req and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.Http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return newAPIError(req, resp.StatusCode, raw)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
