package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"protrade/types"

	"github.com/shopspring/decimal"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches candle series from the Yahoo Finance v8 chart API.
type YahooClient struct {
	baseURL string
	client  *http.Client
}

func NewYahooClient() *YahooClient {
	return &YahooClient{
		baseURL: defaultYahooBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewYahooClientWithBaseURL exists for tests pointing at a local server.
func NewYahooClientWithBaseURL(baseURL string) *YahooClient {
	c := NewYahooClient()
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// chartResponse mirrors the subset of the v8 chart payload we read. Bar
// fields are pointers because Yahoo ships nulls for halted sample points.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *YahooClient) FetchSeries(ctx context.Context, symbol string, period types.Period, interval types.Interval) ([]types.Candle, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol: %w", ErrDataUnavailable)
	}
	if _, ok := types.PeriodToTime[period]; !ok {
		return nil, ErrPeriodNotSupported
	}
	if _, ok := types.IntervalToTime[interval]; !ok {
		return nil, ErrIntervalNotSupported
	}

	body, err := c.get(ctx, symbol, period, interval)
	if err != nil {
		return nil, err
	}

	candles := convertChart(body, symbol, interval)
	if len(candles) == 0 {
		return nil, fmt.Errorf("symbol %s: %w", symbol, ErrDataUnavailable)
	}
	return candles, nil
}

// FetchLatestPrices quotes each symbol off its most recent 1-minute bar.
// Symbols that fail to resolve are skipped.
func (c *YahooClient) FetchLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		body, err := c.get(ctx, symbol, types.OneDay, types.OneMinute)
		if err != nil {
			continue
		}
		if price, ok := latestPrice(body); ok {
			prices[symbol] = price
		}
	}
	return prices, nil
}

func (c *YahooClient) get(ctx context.Context, symbol string, period types.Period, interval types.Interval) (*chartResponse, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(symbol), period, interval)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "protrade/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %v: %w", symbol, err, ErrDataUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("symbol %s: status %s: %w", symbol, resp.Status, ErrDataUnavailable)
	}

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("symbol %s: decode: %v: %w", symbol, err, ErrDataUnavailable)
	}
	if body.Chart.Error != nil || len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("symbol %s: %w", symbol, ErrDataUnavailable)
	}
	return &body, nil
}

// convertChart flattens the chart payload into candles, dropping sample
// points with any null field so a partial bar never reaches the caller.
func convertChart(body *chartResponse, symbol string, interval types.Interval) []types.Candle {
	result := body.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	var candles []types.Candle
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}
		candles = append(candles, types.Candle{
			Symbol:    symbol,
			Open:      decimal.NewFromFloat(*quote.Open[i]),
			High:      decimal.NewFromFloat(*quote.High[i]),
			Low:       decimal.NewFromFloat(*quote.Low[i]),
			Close:     decimal.NewFromFloat(*quote.Close[i]),
			Volume:    decimal.NewFromFloat(*quote.Volume[i]),
			Interval:  interval,
			Timestamp: time.Unix(ts, 0).UTC(),
		})
	}
	return candles
}

func latestPrice(body *chartResponse) (decimal.Decimal, bool) {
	result := body.Chart.Result[0]
	if result.Meta.RegularMarketPrice > 0 {
		return decimal.NewFromFloat(result.Meta.RegularMarketPrice).Round(2), true
	}
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] != nil {
				return decimal.NewFromFloat(*closes[i]).Round(2), true
			}
		}
	}
	return decimal.Zero, false
}
