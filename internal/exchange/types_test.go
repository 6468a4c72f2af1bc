package exchange

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName_String(t *testing.T) {
	tests := []struct {
		name     Name
		expected string
	}{
		{
			name:     BINANCE,
			expected: "binance",
		},
		{
			name:     BITFINEX,
			expected: "bitfinex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.name.String())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name         Name
		expectedURL  string
		expectedPath string
	}{
		{
			name:         BINANCE,
			expectedURL:  "https://api.binance.com",
			expectedPath: "api/v3/ticker/24hr",
		},
		{
			name:         BITFINEX,
			expectedURL:  "https://api-pub.bitfinex.com",
			expectedPath: "v2/tickers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			e := New(tt.name)
			assert.Equal(t, tt.name, e.Name)
			assert.Equal(t, tt.expectedURL, e.BaseURL)
			assert.Equal(t, tt.expectedPath, e.TickerPath)
		})
	}
}

func TestExchange_WithBaseURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:9000", New(BINANCE).WithBaseURL("http://127.0.0.1:9000/").BaseURL)
	assert.Equal(t, "https://api.binance.com", New(BINANCE).WithBaseURL("").BaseURL)
}

func TestExchange_TickerURL(t *testing.T) {
	tests := []struct {
		name        string
		exchange    *Exchange
		symbol      string
		expectedURL string
	}{
		{
			name:        "binance ticker url",
			exchange:    New(BINANCE),
			symbol:      "BTCUSDT",
			expectedURL: "https://api.binance.com/api/v3/ticker/24hr?symbol=BTCUSDT",
		},
		{
			name:        "bitfinex ticker url",
			exchange:    New(BITFINEX),
			symbol:      "fUSDT",
			expectedURL: "https://api-pub.bitfinex.com/v2/tickers?symbols=fUSDT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedURL, tt.exchange.TickerURL(tt.symbol))
		})
	}
}

func TestExchange_TickersURL(t *testing.T) {
	raw := New(BINANCE).TickersURL([]string{"BTCUSDT", "ETHUSDT"})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/api/v3/ticker/24hr", u.Path)
	assert.Equal(t, `["BTCUSDT","ETHUSDT"]`, u.Query().Get("symbols"))
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{in: "BTC", expected: "BTCUSDT"},
		{in: "btc", expected: "BTCUSDT"},
		{in: "eth", expected: "ETHUSDT"},
		{in: "BTCUSDT", expected: "BTCUSDT"},
		{in: "solusdt", expected: "SOLUSDT"},
		{in: " bnb ", expected: "BNBUSDT"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSymbol(tt.in))
		})
	}
}

func TestFundingSymbol(t *testing.T) {
	tests := map[string]string{
		"USDT": "fUSDT",
		"btc":  "fBTC",
		"ETH":  "fETH",
		"usd":  "fUSD",
		"DOGE": "fUSDT",
		"":     "fUSDT",
	}

	for asset, expected := range tests {
		t.Run(asset, func(t *testing.T) {
			assert.Equal(t, expected, FundingSymbol(asset))
		})
	}
}

func TestReferenceRate(t *testing.T) {
	tests := map[string]string{
		"USDT": "4.2",
		"usd":  "3.8",
		"BTC":  "2.1",
		"ETH":  "2.5",
		"EUR":  "2.8",
		"DOGE": "3.0",
	}

	for asset, expected := range tests {
		t.Run(asset, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(expected).Equal(ReferenceRate(asset)),
				"got %s", ReferenceRate(asset))
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Exchange: BINANCE, Status: 400, Code: -1121, Msg: "Invalid symbol."}
	assert.Equal(t, "binance: status=400, code=-1121, msg=Invalid symbol.", err.Error())

	err = &APIError{Exchange: BITFINEX, Status: 503}
	assert.Equal(t, "bitfinex: unexpected status: 503", err.Error())
}
