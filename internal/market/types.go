package market

import "github.com/shopspring/decimal"

// PriceQuote is the 24h ticker of one spot trading pair.
type PriceQuote struct {
	Symbol             string
	LastPrice          decimal.Decimal
	PriceChangePercent decimal.Decimal
	Volume             decimal.Decimal
	High               decimal.Decimal
	Low                decimal.Decimal
}

// WatchItem is one entry of a batched price lookup.
type WatchItem struct {
	Symbol             string
	LastPrice          decimal.Decimal
	PriceChangePercent decimal.Decimal
}

// Status tells where a lending figure came from.
type Status string

const (
	StatusActive        Status = "ACTIVE"
	StatusMarketRate    Status = "MARKET_RATE"
	StatusReferenceRate Status = "REFERENCE_RATE"
	StatusErrorFallback Status = "ERROR_FALLBACK"
)

// Display labels for the period and purchased-amount fields.
const (
	PeriodRealTime  = "實時利率"
	PeriodReference = "參考利率"

	AmountDynamic   = "動態計算"
	AmountAPIError  = "API錯誤"
	AmountException = "異常錯誤"
)

// LendingRateEstimate is an annualized rate derived from a funding ticker,
// or a reference figure when the ticker could not be used.
type LendingRateEstimate struct {
	Asset              string
	AnnualInterestRate decimal.Decimal
	PurchasedAmount    string
	Status             Status
	Period             string
}
