package exchange

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Name represents the upstream APIs the bot reads from
type Name int

// Exchange names
const (
	BINANCE Name = iota
	BITFINEX
)

func (n Name) String() string {
	return [...]string{"binance", "bitfinex"}[n]
}

// QuoteCurrency is appended to bare assets to form a spot trading pair.
const QuoteCurrency = "USDT"

// Exchange represents an upstream API with its configuration
type Exchange struct {
	Name       Name
	BaseURL    string
	TickerPath string
}

// BinanceTicker represents a Binance 24hr ticker. Numeric fields arrive as strings.
type BinanceTicker struct {
	Symbol             string          `json:"symbol"`
	LastPrice          decimal.Decimal `json:"lastPrice"`
	PriceChangePercent decimal.Decimal `json:"priceChangePercent"`
	Volume             decimal.Decimal `json:"volume"`
	HighPrice          decimal.Decimal `json:"highPrice"`
	LowPrice           decimal.Decimal `json:"lowPrice"`
}

// BinanceErrorResponse represents Binance error response
type BinanceErrorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Positions inside a Bitfinex funding ticker array.
const (
	BitfinexSymbol              = 0
	BitfinexBidSize             = 2
	BitfinexDailyChangeRelative = 6
	BitfinexVolume              = 8
)

// BitfinexMinFields is the shortest ticker array accepted as well-formed.
const BitfinexMinFields = 8

// APIError is a non-200 answer from an upstream API.
type APIError struct {
	Exchange Name
	Status   int
	Code     int
	Msg      string
}

func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: unexpected status: %d", e.Exchange, e.Status)
	}
	return fmt.Sprintf("%s: status=%d, code=%d, msg=%s", e.Exchange, e.Status, e.Code, e.Msg)
}

func baseURLs() map[Name]string {
	return map[Name]string{
		BINANCE:  "https://api.binance.com",
		BITFINEX: "https://api-pub.bitfinex.com",
	}
}

func tickerPaths() map[Name]string {
	return map[Name]string{
		BINANCE:  "api/v3/ticker/24hr",
		BITFINEX: "v2/tickers",
	}
}

// New creates a new Exchange instance with default configuration
func New(name Name) *Exchange {
	return &Exchange{
		Name:       name,
		BaseURL:    baseURLs()[name],
		TickerPath: tickerPaths()[name],
	}
}

// WithBaseURL overrides the base URL. An empty value keeps the default.
func (e *Exchange) WithBaseURL(base string) *Exchange {
	if base != "" {
		e.BaseURL = strings.TrimRight(base, "/")
	}
	return e
}

// TickerURL returns the URL for a single-instrument ticker request
func (e *Exchange) TickerURL(symbol string) string {
	if e.Name == BITFINEX {
		return fmt.Sprintf("%s/%s?symbols=%s", e.BaseURL, e.TickerPath, url.QueryEscape(symbol))
	}
	return fmt.Sprintf("%s/%s?symbol=%s", e.BaseURL, e.TickerPath, url.QueryEscape(symbol))
}

// TickersURL returns the URL for a batched Binance ticker request. The pairs
// are sent as a JSON array of strings in a single query parameter.
func (e *Exchange) TickersURL(pairs []string) string {
	quoted := make([]string, len(pairs))
	for i, p := range pairs {
		quoted[i] = `"` + p + `"`
	}
	q := url.Values{}
	q.Set("symbols", "["+strings.Join(quoted, ",")+"]")
	return fmt.Sprintf("%s/%s?%s", e.BaseURL, e.TickerPath, q.Encode())
}

// NormalizeSymbol uppercases s and appends the quote currency unless present.
func NormalizeSymbol(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.HasSuffix(s, QuoteCurrency) {
		return s
	}
	return s + QuoteCurrency
}

// FundingSymbol maps an asset to its Bitfinex funding instrument. Unknown
// assets fall back to fUSDT.
func FundingSymbol(asset string) string {
	switch strings.ToUpper(asset) {
	case "USDT":
		return "fUSDT"
	case "BTC":
		return "fBTC"
	case "ETH":
		return "fETH"
	case "USD":
		return "fUSD"
	default:
		return "fUSDT"
	}
}

var referenceRates = map[string]decimal.Decimal{
	"USDT": decimal.RequireFromString("4.2"),
	"USD":  decimal.RequireFromString("3.8"),
	"BTC":  decimal.RequireFromString("2.1"),
	"ETH":  decimal.RequireFromString("2.5"),
	"EUR":  decimal.RequireFromString("2.8"),
}

var defaultReferenceRate = decimal.RequireFromString("3.0")

// ReferenceRate returns the static annual rate, in percent, used when no
// live figure is available.
func ReferenceRate(asset string) decimal.Decimal {
	if r, ok := referenceRates[strings.ToUpper(asset)]; ok {
		return r
	}
	return defaultReferenceRate
}
