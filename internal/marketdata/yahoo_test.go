package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"protrade/types"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "regularMarketPrice": 103.5},
      "timestamp": [60, 120, 180],
      "indicators": {"quote": [{
        "open":   [100.0, 101.0, null],
        "high":   [101.0, 102.5, 104.0],
        "low":    [99.5, 100.5, 102.0],
        "close":  [100.5, 102.0, 103.5],
        "volume": [1000, 1200, 900]
      }]}
    }],
    "error": null
  }
}`

const errorPayload = `{
  "chart": {
    "result": null,
    "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
  }
}`

func chartServer(t *testing.T, handler http.HandlerFunc) *YahooClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewYahooClientWithBaseURL(srv.URL)
}

func TestYahooFetchSeries(t *testing.T) {
	client := chartServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("range") != "1d" || r.URL.Query().Get("interval") != "1m" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, chartPayload)
	})

	candles, err := client.FetchSeries(context.Background(), "aapl", types.OneDay, types.OneMinute)
	if err != nil {
		t.Fatalf("FetchSeries() error = %v", err)
	}
	// Third sample point has a null open and must be dropped.
	if len(candles) != 2 {
		t.Fatalf("FetchSeries() = %d candles, want 2", len(candles))
	}
	if candles[0].Symbol != "AAPL" {
		t.Errorf("symbol = %s, want AAPL", candles[0].Symbol)
	}
	if candles[1].Close.String() != "102" {
		t.Errorf("close = %v, want 102", candles[1].Close)
	}
	if !candles[0].Timestamp.Before(candles[1].Timestamp) {
		t.Errorf("candles not ascending by timestamp")
	}
}

func TestYahooFetchSeriesUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "provider error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, errorPayload)
			},
		},
		{
			name: "http failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusTooManyRequests)
			},
		},
		{
			name: "empty series",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"chart":{"result":[{"meta":{},"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := chartServer(t, tt.handler)
			_, err := client.FetchSeries(context.Background(), "NOPE", types.OneDay, types.OneMinute)
			if !errors.Is(err, ErrDataUnavailable) {
				t.Errorf("FetchSeries() error = %v, want ErrDataUnavailable", err)
			}
		})
	}
}

func TestYahooFetchSeriesRejectsUnknownWindow(t *testing.T) {
	client := NewYahooClientWithBaseURL("http://127.0.0.1:0")
	if _, err := client.FetchSeries(context.Background(), "AAPL", types.Period("9y"), types.OneMinute); !errors.Is(err, ErrPeriodNotSupported) {
		t.Errorf("period error = %v, want ErrPeriodNotSupported", err)
	}
	if _, err := client.FetchSeries(context.Background(), "AAPL", types.OneDay, types.Interval("7m")); !errors.Is(err, ErrIntervalNotSupported) {
		t.Errorf("interval error = %v, want ErrIntervalNotSupported", err)
	}
}

// A batch quote tolerates individual symbols failing: the bad symbol is
// absent from the result and the rest still resolve.
func TestYahooFetchLatestPricesPartialFailure(t *testing.T) {
	client := chartServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "BAD") {
			fmt.Fprint(w, errorPayload)
			return
		}
		fmt.Fprint(w, chartPayload)
	})

	prices, err := client.FetchLatestPrices(context.Background(), []string{"AAPL", "BAD", "MSFT"})
	if err != nil {
		t.Fatalf("FetchLatestPrices() error = %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("FetchLatestPrices() = %d entries, want 2", len(prices))
	}
	if _, ok := prices["BAD"]; ok {
		t.Errorf("unresolvable symbol BAD present in result")
	}
	if prices["AAPL"].String() != "103.5" {
		t.Errorf("AAPL price = %v, want 103.5 (regular market price)", prices["AAPL"])
	}
}
