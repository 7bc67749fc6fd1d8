package basis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/basis-arb/ftxclient/exchanges/ftx"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExchange struct {
	mock.Mock
}

func (m *mockExchange) GetFuture(ctx context.Context, futureName string) (*ftx.FuturesData, error) {
	args := m.Called(ctx, futureName)
	if f, ok := args.Get(0).(*ftx.FuturesData); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExchange) GetMarket(ctx context.Context, marketName string) (*ftx.MarketData, error) {
	args := m.Called(ctx, marketName)
	if md, ok := args.Get(0).(*ftx.MarketData); ok {
		return md, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExchange) PlaceOrder(ctx context.Context, req *ftx.PlaceOrderRequest) (*ftx.OrderData, error) {
	args := m.Called(ctx, req)
	if o, ok := args.Get(0).(*ftx.OrderData); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

var errExchange = errors.New("exchange unavailable")

func newMock(futureBid, futureAsk, spotBid, spotAsk float64) *mockExchange {
	m := new(mockExchange)
	m.On("GetFuture", mock.Anything, "BTC-PERP").Return(&ftx.FuturesData{Name: "BTC-PERP", Bid: futureBid, Ask: futureAsk}, nil)
	m.On("GetMarket", mock.Anything, "BTC/USD").Return(&ftx.MarketData{Name: "BTC/USD", Bid: spotBid, Ask: spotAsk, MinProvideSize: 0.001}, nil)
	return m
}

func isLeg(market, side string, price float64) interface{} {
	return mock.MatchedBy(func(req *ftx.PlaceOrderRequest) bool {
		return req.Market == market && req.Side == side && req.Price == price &&
			req.Type == ftx.Limit && req.Size == 0.001 && req.ClientID.Valid
	})
}

func TestSpread(t *testing.T) {
	t.Parallel()
	s, err := PositiveSpread(10100, 10000)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(s), s.String())

	s, err = NegativeSpread(9950, 10000)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-0.5").Equal(s), s.String())

	_, err = PositiveSpread(1, 0)
	assert.ErrorIs(t, err, errZeroPrice)
}

func TestParseDirection(t *testing.T) {
	t.Parallel()
	d, err := ParseDirection(" Negative ")
	require.NoError(t, err)
	assert.Equal(t, Negative, d)
	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, errInvalidDirection)
}

func TestParamsCheck(t *testing.T) {
	t.Parallel()
	var p *Params
	assert.ErrorIs(t, p.Check(), errParamsAreNil)

	p = &Params{}
	assert.ErrorIs(t, p.Check(), errCoinEmpty)

	p.Coin = "BTC"
	assert.ErrorIs(t, p.Check(), errInvalidDirection)

	p.Direction = Positive
	assert.ErrorIs(t, p.Check(), errInvalidAttempts)

	p.Policy.MaxAttempts = 1
	assert.ErrorIs(t, p.Check(), errBackoffIsNil)

	p.Policy = ConstantRetry(1, 0)
	assert.NoError(t, p.Check())
}

func TestStatusZeroValue(t *testing.T) {
	t.Parallel()
	var res Result
	assert.Equal(t, Unknown, res.Status)
	assert.NotEqual(t, Success, res.Status, "an unset result must not read as a success")
	assert.Equal(t, "unknown", res.Status.String())
	assert.Equal(t, "success", Success.String())
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(nil)
	assert.ErrorIs(t, err, errExchangeIsNil)
}

func TestRunPositiveSuccess(t *testing.T) {
	t.Parallel()
	m := newMock(10200, 10210, 9990, 10000)
	m.On("PlaceOrder", mock.Anything, isLeg("BTC-PERP", ftx.Sell, 10200)).Return(&ftx.OrderData{ID: 1}, nil).Once()
	m.On("PlaceOrder", mock.Anything, isLeg("BTC/USD", ftx.Buy, 10000)).Return(&ftx.OrderData{ID: 2}, nil).Once()

	l, err := New(m)
	require.NoError(t, err)
	res, err := l.Run(context.Background(), &Params{Coin: "BTC", Direction: Positive, Tolerance: 1, Policy: ConstantRetry(3, 0)})
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, 1, res.Attempts)
	assert.True(t, decimal.NewFromInt(2).Equal(res.Spread), res.Spread.String())
	require.Len(t, res.Orders, 2)
	assert.Equal(t, int64(1), res.Orders[0].ID, "the future leg should be placed first")
	assert.Equal(t, int64(2), res.Orders[1].ID)
	assert.NoError(t, res.Err)
	m.AssertExpectations(t)

	var ids []string
	for _, c := range m.Calls {
		if c.Method == "PlaceOrder" {
			req := c.Arguments.Get(1).(*ftx.PlaceOrderRequest)
			_, err := uuid.FromString(req.ClientID.String)
			assert.NoError(t, err, "client ids should be uuids")
			ids = append(ids, req.ClientID.String)
		}
	}
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestRunNegativeSuccess(t *testing.T) {
	t.Parallel()
	m := newMock(9940, 9950, 10000, 10010)
	m.On("PlaceOrder", mock.Anything, isLeg("BTC-PERP", ftx.Buy, 9950)).Return(&ftx.OrderData{ID: 1}, nil).Once()
	m.On("PlaceOrder", mock.Anything, isLeg("BTC/USD", ftx.Sell, 10000)).Return(&ftx.OrderData{ID: 2}, nil).Once()

	l, err := New(m)
	require.NoError(t, err)
	res, err := l.Run(context.Background(), &Params{Coin: "BTC", Direction: Negative, Tolerance: 0, Policy: ConstantRetry(3, 0)})
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
	assert.True(t, decimal.RequireFromString("-0.5").Equal(res.Spread), res.Spread.String())
	m.AssertExpectations(t)
}

func TestRunConditionUnmet(t *testing.T) {
	t.Parallel()
	m := newMock(10050, 10060, 9990, 10000)
	l, err := New(m)
	require.NoError(t, err)
	res, err := l.Run(context.Background(), &Params{Coin: "BTC", Direction: Positive, Tolerance: 1, Policy: ConstantRetry(3, time.Millisecond)})
	require.NoError(t, err)
	assert.Equal(t, ConditionUnmet, res.Status)
	assert.Equal(t, 3, res.Attempts, "every attempt should be used")
	assert.ErrorIs(t, res.Err, errConditionUnmet)
	assert.Empty(t, res.Orders)
	m.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	m.AssertNumberOfCalls(t, "GetFuture", 3)
}

func TestRunSecondLegFails(t *testing.T) {
	t.Parallel()
	m := newMock(10200, 10210, 9990, 10000)
	m.On("PlaceOrder", mock.Anything, isLeg("BTC-PERP", ftx.Sell, 10200)).Return(&ftx.OrderData{ID: 1}, nil).Once()
	apiErr := &ftx.APIError{StatusCode: 400, Message: "Not enough balances"}
	m.On("PlaceOrder", mock.Anything, isLeg("BTC/USD", ftx.Buy, 10000)).Return(nil, apiErr).Once()

	l, err := New(m)
	require.NoError(t, err)
	res, err := l.Run(context.Background(), &Params{Coin: "BTC", Direction: Positive, Tolerance: 1, Policy: ConstantRetry(3, 0)})
	require.NoError(t, err)
	assert.Equal(t, OrderFailed, res.Status)
	assert.Equal(t, 1, res.Attempts, "order failures should not be retried")
	require.Len(t, res.Orders, 1, "the accepted leg should be reported")
	var target *ftx.APIError
	require.ErrorAs(t, res.Err, &target)
	assert.Equal(t, "Not enough balances", target.Message)
}

func TestRunFetchFailureAborts(t *testing.T) {
	t.Parallel()
	m := new(mockExchange)
	m.On("GetMarket", mock.Anything, "BTC/USD").Return(&ftx.MarketData{Ask: 1, Bid: 1, MinProvideSize: 0.001}, nil)
	m.On("GetFuture", mock.Anything, "BTC-PERP").Return(nil, errExchange)
	l, err := New(m)
	require.NoError(t, err)
	res, err := l.Run(context.Background(), &Params{Coin: "BTC", Direction: Positive, Policy: ConstantRetry(3, 0)})
	require.NoError(t, err)
	assert.Equal(t, Aborted, res.Status)
	assert.ErrorIs(t, res.Err, errExchange)
	assert.Equal(t, 1, res.Attempts)

	m = new(mockExchange)
	m.On("GetMarket", mock.Anything, "BTC/USD").Return(&ftx.MarketData{}, nil)
	l, err = New(m)
	require.NoError(t, err)
	res, err = l.Run(context.Background(), &Params{Coin: "BTC", Direction: Positive, Policy: ConstantRetry(3, 0)})
	require.NoError(t, err)
	assert.Equal(t, Aborted, res.Status)
	assert.ErrorIs(t, res.Err, errInvalidProvideSize)
	assert.Zero(t, res.Attempts)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	m := newMock(10050, 10060, 9990, 10000)
	l, err := New(m)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := l.Run(ctx, &Params{Coin: "BTC", Direction: Positive, Tolerance: 1, Policy: ConstantRetry(5, time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, Aborted, res.Status)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, 1, res.Attempts)
}

func TestRunInvalidParams(t *testing.T) {
	t.Parallel()
	l, err := New(new(mockExchange))
	require.NoError(t, err)
	_, err = l.Run(context.Background(), &Params{Coin: "BTC", Direction: Positive})
	assert.ErrorIs(t, err, errInvalidAttempts)
}

func TestNewRetryPolicy(t *testing.T) {
	t.Parallel()
	p, err := NewRetryPolicy(3, time.Second, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Second, p.Backoff.NextBackOff(), "zero max wait should give a constant policy")
	assert.Equal(t, time.Second, p.Backoff.NextBackOff())

	p, err = NewRetryPolicy(3, time.Second, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 3, p.MaxAttempts)
	assert.NotNil(t, p.Backoff)

	_, err = NewRetryPolicy(0, time.Second, 0)
	assert.ErrorIs(t, err, errInvalidAttempts)
	_, err = NewRetryPolicy(1, -time.Second, 0)
	assert.ErrorIs(t, err, errInvalidRetryTimings)
}
