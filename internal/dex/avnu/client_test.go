package avnu

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", Headers{}, 0)
	if client.Base != DefaultBase {
		t.Fatalf("expected default base, got %s", client.Base)
	}
	if client.Http.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %s", client.Http.Timeout)
	}
	if client.Headers.Origin != "https://app.avnu.fi" {
		t.Fatalf("expected default origin, got %s", client.Headers.Origin)
	}
}

func TestQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != DefaultQuotePath {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sellTokenAddress") != "0xsell" || q.Get("buyTokenAddress") != "0xbuy" {
			t.Fatalf("missing token query: %s", r.URL.RawQuery)
		}
		if q.Get("size") != "3" {
			t.Fatalf("expected size 3, got %s", q.Get("size"))
		}
		if got := q["excludeSources"]; len(got) != 2 || got[0] != "Ekubo" || got[1] != "JediSwap" {
			t.Fatalf("unexpected excludeSources %v", got)
		}
		if q.Get("integratorName") != DefaultIntegrator {
			t.Fatalf("unexpected integrator %s", q.Get("integratorName"))
		}
		if r.Header.Get("User-Agent") != "agent/1.0" || r.Header.Get("Accept-Language") != "en-US" {
			t.Fatalf("presentation headers not forwarded: %v", r.Header)
		}
		_, _ = w.Write([]byte(`{"quotes":[{"quoteId":"q1","buyAmount":"0x10"},{"quoteId":"q2"}],"prices":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Headers{UserAgent: "agent/1.0", AcceptLanguage: "en-US"}, time.Second)
	client.Http = server.Client()

	quotes, err := client.Quotes(context.Background(), QuoteParams{
		SellToken: "0xsell", BuyToken: "0xbuy", SellAmount: "0x1", Taker: "0xme",
		Size: 3, ExcludeSources: []string{"Ekubo", "JediSwap"},
	})
	if err != nil {
		t.Fatalf("Quotes returned error: %v", err)
	}
	if len(quotes) != 2 || quotes[0].QuoteID != "q1" || quotes[0].BuyAmount != "0x10" {
		t.Fatalf("unexpected quotes %+v", quotes)
	}
}

func TestQuotesNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"messages":["Insufficient liquidity"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Headers{}, time.Second)
	_, err := client.Quotes(context.Background(), QuoteParams{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || len(apiErr.Messages) != 1 {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
	if apiErr.Error() != "avnu GET "+DefaultQuotePath+" status 400: Insufficient liquidity" {
		t.Fatalf("unexpected error text %q", apiErr.Error())
	}
}

func TestBuild(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != DefaultBuildPath {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" || r.Header.Get("Ask-Signature") != "true" {
			t.Fatalf("missing build headers: %v", r.Header)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["quoteId"] != "q1" || body["takerAddress"] != "0xme" || body["slippage"] != 0.005 || body["includeApprove"] != true {
			t.Fatalf("unexpected build body %v", body)
		}
		_, _ = w.Write([]byte(`{"chainId":"0x534e5f4d41494e","calls":[
			{"contractAddress":"0xaaa","entrypoint":"approve","calldata":["0x1"]},
			{"contractAddress":"0xbbb","entrypoint":"multi_route_swap","calldata":["0x2","0x3"]}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Headers{}, time.Second)
	resp, err := client.Build(context.Background(), BuildParams{QuoteID: "q1", Taker: "0xme", Slippage: 0.005, IncludeApprove: true})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(resp.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(resp.Calls))
	}
	if resp.Calls[1].Entrypoint != "multi_route_swap" || len(resp.Calls[1].Calldata) != 2 {
		t.Fatalf("unexpected swap call %+v", resp.Calls[1])
	}
}

func TestBuildExpiredQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("quote expired"))
	}))
	defer server.Close()

	client := NewClient(server.URL, Headers{}, time.Second)
	_, err := client.Build(context.Background(), BuildParams{QuoteID: "stale"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
	if apiErr.Error() != "avnu POST "+DefaultBuildPath+" status 404: quote expired" {
		t.Fatalf("unexpected error text %q", apiErr.Error())
	}
}

func TestBuildMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"calls": "nope"`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Headers{}, time.Second)
	if _, err := client.Build(context.Background(), BuildParams{QuoteID: "q1"}); err == nil {
		t.Fatalf("expected decode error")
	}
}
