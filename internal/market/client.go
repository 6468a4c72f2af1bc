package market

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/richardrhg/crypto-currency-discord-bot/internal/exchange"
	"github.com/richardrhg/crypto-currency-discord-bot/pkg/log"
	"github.com/shopspring/decimal"
)

// MaxWatchSymbols bounds a batched price lookup.
const MaxWatchSymbols = 10

// ErrUnavailable wraps every failed price lookup.
var ErrUnavailable = errors.New("market data unavailable")

var errUnexpectedShape = errors.New("unexpected ticker shape")

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads spot tickers from Binance and funding tickers from Bitfinex.
type Client struct {
	client   httpClient
	binance  *exchange.Exchange
	bitfinex *exchange.Exchange
}

// Option configures a Client.
type Option func(*Client)

// WithBinanceURL points spot lookups at another base URL.
func WithBinanceURL(base string) Option {
	return func(c *Client) { c.binance.WithBaseURL(base) }
}

// WithBitfinexURL points funding lookups at another base URL.
func WithBitfinexURL(base string) Option {
	return func(c *Client) { c.bitfinex.WithBaseURL(base) }
}

// NewClient creates a client sending requests through c.
func NewClient(c httpClient, opts ...Option) *Client {
	mc := &Client{
		client:   c,
		binance:  exchange.New(exchange.BINANCE),
		bitfinex: exchange.New(exchange.BITFINEX),
	}
	for _, opt := range opts {
		opt(mc)
	}
	return mc
}

// GetPrice returns the 24h ticker for symbol, normalized to a USDT pair.
func (c *Client) GetPrice(ctx context.Context, symbol string) (*PriceQuote, error) {
	pair := exchange.NormalizeSymbol(symbol)

	body, err := c.fetch(ctx, c.binance, c.binance.TickerURL(pair))
	if err != nil {
		log.Logger().Error().Err(err).Str("pair", pair).Msg("price request failed")
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, pair, err)
	}

	var t exchange.BinanceTicker
	if err := json.Unmarshal(body, &t); err != nil {
		log.Logger().Error().Err(err).Str("pair", pair).Msg("decode price response")
		return nil, fmt.Errorf("%w: %s: decode response: %w", ErrUnavailable, pair, err)
	}
	if t.Symbol == "" {
		log.Error(fmt.Sprintf("Empty ticker for %s: %s", pair, body))
		return nil, fmt.Errorf("%w: %s: empty ticker", ErrUnavailable, pair)
	}

	return &PriceQuote{
		Symbol:             t.Symbol,
		LastPrice:          t.LastPrice,
		PriceChangePercent: t.PriceChangePercent,
		Volume:             t.Volume,
		High:               t.HighPrice,
		Low:                t.LowPrice,
	}, nil
}

// GetMultiplePrices fetches up to MaxWatchSymbols tickers in one request.
// Items follow the response order, which need not match symbols. Any
// failure discards the whole batch.
func (c *Client) GetMultiplePrices(ctx context.Context, symbols []string) ([]WatchItem, error) {
	if len(symbols) == 0 || len(symbols) > MaxWatchSymbols {
		return nil, fmt.Errorf("%w: need 1 to %d symbols, got %d", ErrUnavailable, MaxWatchSymbols, len(symbols))
	}

	pairs := make([]string, len(symbols))
	for i, s := range symbols {
		pairs[i] = exchange.NormalizeSymbol(s)
	}

	body, err := c.fetch(ctx, c.binance, c.binance.TickersURL(pairs))
	if err != nil {
		log.Logger().Error().Err(err).Strs("pairs", pairs).Msg("batched price request failed")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var tickers []exchange.BinanceTicker
	if err := json.Unmarshal(body, &tickers); err != nil {
		log.Logger().Error().Err(err).Strs("pairs", pairs).Msg("decode batched price response")
		return nil, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}

	items := make([]WatchItem, 0, len(tickers))
	for _, t := range tickers {
		items = append(items, WatchItem{
			Symbol:             t.Symbol,
			LastPrice:          t.LastPrice,
			PriceChangePercent: t.PriceChangePercent,
		})
	}
	return items, nil
}

// GetLendingRate derives an annual rate for asset from its Bitfinex funding
// ticker as |daily relative change| x 365. It always returns a usable
// estimate; Status records whether the figure is live or a reference value.
func (c *Client) GetLendingRate(ctx context.Context, asset string) LendingRateEstimate {
	asset = strings.ToUpper(strings.TrimSpace(asset))
	symbol := exchange.FundingSymbol(asset)

	body, err := c.fetch(ctx, c.bitfinex, c.bitfinex.TickerURL(symbol))
	if err != nil {
		var apiErr *exchange.APIError
		if errors.As(err, &apiErr) {
			log.Warn(fmt.Sprintf("Bitfinex returned status %d for %s, using reference rate", apiErr.Status, symbol))
			return referenceEstimate(asset, StatusReferenceRate, AmountAPIError)
		}
		log.Logger().Error().Err(err).Str("symbol", symbol).Msg("lending request failed")
		return referenceEstimate(asset, StatusErrorFallback, AmountException)
	}

	est, err := parseFundingTicker(asset, body)
	switch {
	case errors.Is(err, errUnexpectedShape):
		log.Warn(fmt.Sprintf("Unexpected Bitfinex ticker for %s: %s", symbol, body))
		return referenceEstimate(asset, StatusMarketRate, AmountDynamic)
	case err != nil:
		log.Logger().Error().Err(err).Str("symbol", symbol).Msg("parse lending ticker")
		return referenceEstimate(asset, StatusErrorFallback, AmountException)
	}
	return est
}

func referenceEstimate(asset string, status Status, amount string) LendingRateEstimate {
	return LendingRateEstimate{
		Asset:              asset,
		AnnualInterestRate: exchange.ReferenceRate(asset),
		PurchasedAmount:    amount,
		Status:             status,
		Period:             PeriodReference,
	}
}

var (
	daysPerYear     = decimal.NewFromInt(365)
	minAmountFloor  = decimal.NewFromInt(100)
	minAmountFactor = decimal.RequireFromString("0.1")
)

func parseFundingTicker(asset string, body []byte) (LendingRateEstimate, error) {
	if !json.Valid(body) {
		return LendingRateEstimate{}, fmt.Errorf("invalid JSON: %s", body)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		return LendingRateEstimate{}, errUnexpectedShape
	}

	var fields []json.RawMessage
	if err := json.Unmarshal(rows[0], &fields); err != nil || len(fields) < exchange.BitfinexMinFields {
		return LendingRateEstimate{}, errUnexpectedShape
	}

	change, err := numberAt(fields, exchange.BitfinexDailyChangeRelative)
	if err != nil {
		return LendingRateEstimate{}, err
	}
	volume, err := numberAt(fields, exchange.BitfinexVolume)
	if err != nil {
		return LendingRateEstimate{}, err
	}
	bidSize, err := numberAt(fields, exchange.BitfinexBidSize)
	if err != nil {
		return LendingRateEstimate{}, err
	}

	annual := change.Abs().Mul(daysPerYear)
	minAmount := decimal.Max(minAmountFloor, bidSize.Mul(minAmountFactor))

	log.Logger().Debug().
		Str("asset", asset).
		Str("daily_change", change.String()).
		Str("volume", volume.String()).
		Str("bid_size", bidSize.String()).
		Str("min_amount", minAmount.String()).
		Msg("funding ticker")

	return LendingRateEstimate{
		Asset:              asset,
		AnnualInterestRate: annual,
		PurchasedAmount:    volume.StringFixed(2),
		Status:             StatusActive,
		Period:             PeriodRealTime,
	}, nil
}

func numberAt(fields []json.RawMessage, i int) (decimal.Decimal, error) {
	if i >= len(fields) {
		return decimal.Zero, fmt.Errorf("field %d missing from %d-field ticker", i, len(fields))
	}
	raw := bytes.TrimSpace(fields[i])
	if bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, fmt.Errorf("field %d is null", i)
	}

	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Zero, fmt.Errorf("field %d: %w", i, err)
	}
	return d, nil
}

func (c *Client) fetch(ctx context.Context, e *exchange.Exchange, url string) ([]byte, error) {
	log.Debug(fmt.Sprintf("Requesting %s: %s", e.Name, url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &exchange.APIError{Exchange: e.Name, Status: resp.StatusCode}
		if e.Name == exchange.BINANCE {
			var errResp exchange.BinanceErrorResponse
			if err := json.Unmarshal(body, &errResp); err == nil {
				apiErr.Code = errResp.Code
				apiErr.Msg = errResp.Msg
			}
		}
		return nil, apiErr
	}

	return body, nil
}
