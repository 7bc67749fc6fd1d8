package basis

import (
	"context"
	"errors"

	"github.com/basis-arb/ftxclient/exchanges/ftx"
	"github.com/shopspring/decimal"
)

var (
	errParamsAreNil        = errors.New("params are nil")
	errExchangeIsNil       = errors.New("exchange is nil")
	errCoinEmpty           = errors.New("coin cannot be empty")
	errInvalidDirection    = errors.New("direction must be positive or negative")
	errInvalidAttempts     = errors.New("max attempts must be at least one")
	errBackoffIsNil        = errors.New("retry backoff is nil")
	errZeroPrice           = errors.New("price must be greater than zero")
	errInvalidProvideSize  = errors.New("market minimum provide size must be greater than zero")
	errConditionUnmet      = errors.New("spread condition unmet")
	errInvalidRetryTimings = errors.New("retry waits cannot be negative")
)

// Exchange is the part of the exchange client the loop trades through
type Exchange interface {
	GetFuture(ctx context.Context, futureName string) (*ftx.FuturesData, error)
	GetMarket(ctx context.Context, marketName string) (*ftx.MarketData, error)
	PlaceOrder(ctx context.Context, req *ftx.PlaceOrderRequest) (*ftx.OrderData, error)
}

// Direction selects which side of the basis is traded
type Direction string

// Directions
const (
	// Positive sells the perpetual at its bid and buys spot at its ask when
	// the future trades above spot by more than the tolerance
	Positive Direction = "positive"
	// Negative buys the perpetual at its ask and sells spot at its bid when
	// the spread is below the tolerance
	Negative Direction = "negative"
)

// Status is the outcome of a loop run
type Status uint8

// Run outcomes
const (
	// Unknown is the zero value and never the outcome of a finished run
	Unknown Status = iota
	Success
	ConditionUnmet
	OrderFailed
	Aborted
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Success:
		return "success"
	case ConditionUnmet:
		return "condition unmet"
	case OrderFailed:
		return "order failed"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Params configures a single loop run
type Params struct {
	Coin      string
	Direction Direction
	// Tolerance is the spread threshold in percent
	Tolerance float64
	Policy    RetryPolicy
}

// Result is the typed outcome of a run. Orders holds every leg that was
// accepted, so a partial fill of the pair can be reconciled by client ID.
type Result struct {
	Status   Status
	Attempts int
	Spread   decimal.Decimal
	Orders   []ftx.OrderData
	Err      error
}
