package basis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/basis-arb/ftxclient/exchanges/ftx"
	"github.com/basis-arb/ftxclient/log"
	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

var hundred = decimal.NewFromInt(100)

// PositiveSpread returns (futureBid - spotAsk) / spotAsk * 100
func PositiveSpread(futureBid, spotAsk float64) (decimal.Decimal, error) {
	return spread(futureBid, spotAsk)
}

// NegativeSpread returns (futureAsk - spotBid) / spotBid * 100
func NegativeSpread(futureAsk, spotBid float64) (decimal.Decimal, error) {
	return spread(futureAsk, spotBid)
}

func spread(future, spot float64) (decimal.Decimal, error) {
	if spot <= 0 {
		return decimal.Zero, fmt.Errorf("%w: spot %v", errZeroPrice, spot)
	}
	s := decimal.NewFromFloat(spot)
	return decimal.NewFromFloat(future).Sub(s).Div(s).Mul(hundred), nil
}

// ParseDirection parses a direction name, case insensitive
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Positive, Negative:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", errInvalidDirection, s)
}

// FutureName returns the perpetual future of coin
func FutureName(coin string) string {
	return coin + "-PERP"
}

// SpotName returns the USD spot market of coin
func SpotName(coin string) string {
	return coin + "/USD"
}

// Check validates the run parameters
func (p *Params) Check() error {
	if p == nil {
		return errParamsAreNil
	}
	if p.Coin == "" {
		return errCoinEmpty
	}
	if _, err := ParseDirection(string(p.Direction)); err != nil {
		return err
	}
	return p.Policy.check()
}

// Loop watches the basis of a coin and enters both legs once the spread
// condition holds
type Loop struct {
	exch Exchange
}

// New returns a loop trading through exch
func New(exch Exchange) (*Loop, error) {
	if exch == nil {
		return nil, errExchangeIsNil
	}
	return &Loop{exch: exch}, nil
}

// Quote returns the current spread for the direction together with the prices
// the two legs would be placed at, future first
func (l *Loop) Quote(ctx context.Context, coin string, d Direction) (spreadPct decimal.Decimal, futurePrice, spotPrice float64, err error) {
	future, err := l.exch.GetFuture(ctx, FutureName(coin))
	if err != nil {
		return decimal.Zero, 0, 0, err
	}
	spot, err := l.exch.GetMarket(ctx, SpotName(coin))
	if err != nil {
		return decimal.Zero, 0, 0, err
	}
	switch d {
	case Positive:
		spreadPct, err = PositiveSpread(future.Bid, spot.Ask)
		return spreadPct, future.Bid, spot.Ask, err
	case Negative:
		spreadPct, err = NegativeSpread(future.Ask, spot.Bid)
		return spreadPct, future.Ask, spot.Bid, err
	}
	return decimal.Zero, 0, 0, fmt.Errorf("%w: %q", errInvalidDirection, d)
}

// Run checks the spread up to Policy.MaxAttempts times, waiting per the
// policy between checks, and places both limit legs the first time the
// condition holds. Only invalid parameters are returned as an error, every
// other outcome is reported through the Result.
func (l *Loop) Run(ctx context.Context, p *Params) (*Result, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	direction, _ := ParseDirection(string(p.Direction))
	res := &Result{Status: Aborted}

	spotMarket, err := l.exch.GetMarket(ctx, SpotName(p.Coin))
	if err != nil {
		res.Err = err
		return res, nil
	}
	size := spotMarket.MinProvideSize
	if size <= 0 {
		res.Err = fmt.Errorf("%w: %s %v", errInvalidProvideSize, SpotName(p.Coin), size)
		return res, nil
	}
	tolerance := decimal.NewFromFloat(p.Tolerance)

	op := func() error {
		res.Attempts++
		spreadPct, futurePrice, spotPrice, err := l.Quote(ctx, p.Coin, direction)
		if err != nil {
			res.Status = Aborted
			return backoff.Permanent(err)
		}
		res.Spread = spreadPct
		log.Infof(log.StrategySys, "%s %s spread %s%% attempt %d/%d", p.Coin, direction, spreadPct.StringFixed(4), res.Attempts, p.Policy.MaxAttempts)
		if !conditionHolds(direction, spreadPct, tolerance) {
			res.Status = ConditionUnmet
			return fmt.Errorf("%w: %s%% against tolerance %s%%", errConditionUnmet, spreadPct.StringFixed(4), tolerance)
		}
		for _, leg := range legs(p.Coin, direction, futurePrice, spotPrice, size) {
			id, err := uuid.NewV4()
			if err != nil {
				res.Status = OrderFailed
				return backoff.Permanent(err)
			}
			leg.ClientID = null.StringFrom(id.String())
			order, err := l.exch.PlaceOrder(ctx, leg)
			if err != nil {
				res.Status = OrderFailed
				return backoff.Permanent(fmt.Errorf("%s %s leg client id %s: %w", leg.Side, leg.Market, id, err))
			}
			log.Infof(log.StrategySys, "%s %v %s at %v placed, order %d", leg.Side, leg.Size, leg.Market, leg.Price, order.ID)
			res.Orders = append(res.Orders, *order)
		}
		res.Status = Success
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(p.Policy.Backoff, uint64(p.Policy.MaxAttempts-1)), ctx)
	err = backoff.RetryNotify(op, b, func(err error, wait time.Duration) {
		log.Warnf(log.StrategySys, "%v, retrying in %s", err, wait)
	})
	if err != nil {
		res.Err = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			res.Status = Aborted
		}
	}
	return res, nil
}

func conditionHolds(d Direction, spreadPct, tolerance decimal.Decimal) bool {
	if d == Negative {
		return spreadPct.LessThan(tolerance)
	}
	return spreadPct.GreaterThan(tolerance)
}

// legs returns the future leg followed by the spot leg
func legs(coin string, d Direction, futurePrice, spotPrice, size float64) []*ftx.PlaceOrderRequest {
	futureSide, spotSide := ftx.Sell, ftx.Buy
	if d == Negative {
		futureSide, spotSide = ftx.Buy, ftx.Sell
	}
	return []*ftx.PlaceOrderRequest{
		{Market: FutureName(coin), Side: futureSide, Type: ftx.Limit, Price: futurePrice, Size: size},
		{Market: SpotName(coin), Side: spotSide, Type: ftx.Limit, Price: spotPrice, Size: size},
	}
}
