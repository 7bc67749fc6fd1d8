package ftx

import (
	"time"

	"github.com/volatiletech/null"
)

// Order sides and types as sent on the wire
const (
	Buy    = "buy"
	Sell   = "sell"
	Limit  = "limit"
	Market = "market"
)

// Conditional order types accepted by PlaceConditionalOrder
const (
	Stop         = "stop"
	TakeProfit   = "take_profit"
	TrailingStop = "trailing_stop"
)

// MarketData stores market data
type MarketData struct {
	Name           string  `json:"name"`
	BaseCurrency   string  `json:"baseCurrency"`
	QuoteCurrency  string  `json:"quoteCurrency"`
	MarketType     string  `json:"type"`
	Underlying     string  `json:"underlying"`
	Enabled        bool    `json:"enabled"`
	PostOnly       bool    `json:"postOnly"`
	Ask            float64 `json:"ask"`
	Bid            float64 `json:"bid"`
	Last           float64 `json:"last"`
	Price          float64 `json:"price"`
	PriceIncrement float64 `json:"priceIncrement"`
	SizeIncrement  float64 `json:"sizeIncrement"`
	MinProvideSize float64 `json:"minProvideSize"`
	Change1h       float64 `json:"change1h"`
	Change24h      float64 `json:"change24h"`
	QuoteVolume24h float64 `json:"quoteVolume24h"`
	VolumeUSD24h   float64 `json:"volumeUsd24h"`
}

// OData stores an orderbook level
type OData struct {
	Price float64
	Size  float64
}

// OrderbookData stores orderbook data
type OrderbookData struct {
	MarketName string
	Asks       []OData
	Bids       []OData
}

// rawOrderbook is the wire form of an orderbook
type rawOrderbook struct {
	Asks [][2]float64 `json:"asks"`
	Bids [][2]float64 `json:"bids"`
}

// TradeData stores data from trades
type TradeData struct {
	ID          int64     `json:"id"`
	Liquidation bool      `json:"liquidation"`
	Price       float64   `json:"price"`
	Side        string    `json:"side"`
	Size        float64   `json:"size"`
	Time        time.Time `json:"time"`
}

// OHLCVData stores historical OHLCV data
type OHLCVData struct {
	Close     float64   `json:"close"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Open      float64   `json:"open"`
	StartTime time.Time `json:"startTime"`
	Volume    float64   `json:"volume"`
}

// FuturesData stores data for futures
type FuturesData struct {
	Ask            float64   `json:"ask"`
	Bid            float64   `json:"bid"`
	Change1h       float64   `json:"change1h"`
	Change24h      float64   `json:"change24h"`
	ChangeBod      float64   `json:"changeBod"`
	VolumeUSD24h   float64   `json:"volumeUsd24h"`
	Volume         float64   `json:"volume"`
	Description    string    `json:"description"`
	Enabled        bool      `json:"enabled"`
	Expired        bool      `json:"expired"`
	Expiry         time.Time `json:"expiry"`
	Index          float64   `json:"index"`
	Last           float64   `json:"last"`
	LowerBound     float64   `json:"lowerBound"`
	Mark           float64   `json:"mark"`
	Name           string    `json:"name"`
	Perpetual      bool      `json:"perpetual"`
	PostOnly       bool      `json:"postOnly"`
	PriceIncrement float64   `json:"priceIncrement"`
	SizeIncrement  float64   `json:"sizeIncrement"`
	Underlying     string    `json:"underlying"`
	UpperBound     float64   `json:"upperBound"`
	FutureType     string    `json:"type"`
}

// FutureStatsData stores data on futures stats
type FutureStatsData struct {
	Volume                   float64   `json:"volume"`
	NextFundingRate          float64   `json:"nextFundingRate"`
	NextFundingTime          time.Time `json:"nextFundingTime"`
	ExpirationPrice          float64   `json:"expirationPrice"`
	PredictedExpirationPrice float64   `json:"predictedExpirationPrice"`
	OpenInterest             float64   `json:"openInterest"`
	StrikePrice              float64   `json:"strikePrice"`
}

// FundingRatesData stores data on funding rates
type FundingRatesData struct {
	Future string    `json:"future"`
	Rate   float64   `json:"rate"`
	Time   time.Time `json:"time"`
}

// PositionData stores data of an open position
type PositionData struct {
	Cost                         float64 `json:"cost"`
	EntryPrice                   float64 `json:"entryPrice"`
	EstimatedLiquidationPrice    float64 `json:"estimatedLiquidationPrice"`
	Future                       string  `json:"future"`
	InitialMarginRequirement     float64 `json:"initialMarginRequirement"`
	LongOrderSize                float64 `json:"longOrderSize"`
	MaintenanceMarginRequirement float64 `json:"maintenanceMarginRequirement"`
	NetSize                      float64 `json:"netSize"`
	OpenSize                     float64 `json:"openSize"`
	RealisedPnL                  float64 `json:"realizedPnl"`
	ShortOrderSize               float64 `json:"shortOrderSize"`
	Side                         string  `json:"side"`
	Size                         float64 `json:"size"`
	UnrealisedPnL                float64 `json:"unrealizedPnl"`
	RecentAverageOpenPrice       float64 `json:"recentAverageOpenPrice"`
	RecentBreakEvenPrice         float64 `json:"recentBreakEvenPrice"`
}

// AccountInfoData stores account data
type AccountInfoData struct {
	BackstopProvider             bool           `json:"backstopProvider"`
	Collateral                   float64        `json:"collateral"`
	FreeCollateral               float64        `json:"freeCollateral"`
	InitialMarginRequirement     float64        `json:"initialMarginRequirement"`
	Leverage                     float64        `json:"leverage"`
	Liquidating                  bool           `json:"liquidating"`
	MaintenanceMarginRequirement float64        `json:"maintenanceMarginRequirement"`
	MakerFee                     float64        `json:"makerFee"`
	MarginFraction               float64        `json:"marginFraction"`
	OpenMarginFraction           float64        `json:"openMarginFraction"`
	TakerFee                     float64        `json:"takerFee"`
	TotalAccountValue            float64        `json:"totalAccountValue"`
	TotalPositionSize            float64        `json:"totalPositionSize"`
	Username                     string         `json:"username"`
	Positions                    []PositionData `json:"positions"`
}

// WalletCoinsData stores data about wallet coins
type WalletCoinsData struct {
	CanDeposit  bool   `json:"canDeposit"`
	CanWithdraw bool   `json:"canWithdraw"`
	HasTag      bool   `json:"hasTag"`
	ID          string `json:"id"`
	Name        string `json:"name"`
}

// BalancesData stores balances data
type BalancesData struct {
	Coin     string  `json:"coin"`
	Free     float64 `json:"free"`
	Total    float64 `json:"total"`
	USDValue float64 `json:"usdValue"`
}

// AllWalletBalances stores the balances of every wallet keyed by wallet
// name, the main account is keyed "main"
type AllWalletBalances map[string][]BalancesData

// DepositData stores deposit address data
type DepositData struct {
	Address string `json:"address"`
	Tag     string `json:"tag"`
}

// TransactionData stores data about deposit and withdrawal history
type TransactionData struct {
	Coin          string    `json:"coin"`
	Confirmations int64     `json:"confirmations"`
	ConfirmedTime time.Time `json:"confirmedTime"`
	Fee           float64   `json:"fee"`
	ID            int64     `json:"id"`
	SentTime      time.Time `json:"sentTime"`
	Size          float64   `json:"size"`
	Status        string    `json:"status"`
	Time          time.Time `json:"time"`
	TxID          string    `json:"txid"`
	Address       string    `json:"address"`
	Tag           string    `json:"tag"`
	Notes         string    `json:"notes"`
}

// WithdrawalFeeData stores the estimated cost of a withdrawal
type WithdrawalFeeData struct {
	Method    string  `json:"method"`
	Fee       float64 `json:"fee"`
	Congested bool    `json:"congested"`
}

// SavedAddress stores a whitelisted withdrawal address
type SavedAddress struct {
	ID               int64     `json:"id"`
	Coin             string    `json:"coin"`
	Address          string    `json:"address"`
	Tag              string    `json:"tag"`
	Name             string    `json:"name"`
	IsPrimeTrust     bool      `json:"isPrimetrust"`
	Fiat             bool      `json:"fiat"`
	Whitelisted      bool      `json:"whitelisted"`
	LastUsedAt       time.Time `json:"lastUsedAt"`
	WhitelistedAfter time.Time `json:"whitelistedAfter"`
}

// OrderData stores open order data
type OrderData struct {
	CreatedAt     time.Time `json:"createdAt"`
	FilledSize    float64   `json:"filledSize"`
	Future        string    `json:"future"`
	ID            int64     `json:"id"`
	Market        string    `json:"market"`
	Price         float64   `json:"price"`
	AvgFillPrice  float64   `json:"avgFillPrice"`
	RemainingSize float64   `json:"remainingSize"`
	Side          string    `json:"side"`
	Size          float64   `json:"size"`
	Status        string    `json:"status"`
	OrderType     string    `json:"type"`
	ReduceOnly    bool      `json:"reduceOnly"`
	IOC           bool      `json:"ioc"`
	PostOnly      bool      `json:"postOnly"`
	ClientID      string    `json:"clientId"`
}

// TriggerOrderData stores trigger order data
type TriggerOrderData struct {
	CreatedAt            time.Time `json:"createdAt"`
	Error                string    `json:"error"`
	Future               string    `json:"future"`
	ID                   int64     `json:"id"`
	Market               string    `json:"market"`
	OrderID              int64     `json:"orderId"`
	OrderPrice           float64   `json:"orderPrice"`
	ReduceOnly           bool      `json:"reduceOnly"`
	Side                 string    `json:"side"`
	Size                 float64   `json:"size"`
	Status               string    `json:"status"`
	TrailStart           float64   `json:"trailStart"`
	TrailValue           float64   `json:"trailValue"`
	TriggerPrice         float64   `json:"triggerPrice"`
	TriggeredAt          time.Time `json:"triggeredAt"`
	OrderType            string    `json:"type"`
	MarketOrLimit        string    `json:"orderType"`
	FilledSize           float64   `json:"filledSize"`
	AvgFillPrice         float64   `json:"avgFillPrice"`
	RetryUntilFilled     bool      `json:"retryUntilFilled"`
	CancelLimitOnTrigger bool      `json:"cancelLimitOnTrigger"`
}

// TriggerData stores trigger orders' trigger data
type TriggerData struct {
	Error      string    `json:"error"`
	FilledSize float64   `json:"filledSize"`
	OrderSize  float64   `json:"orderSize"`
	OrderID    int64     `json:"orderId"`
	Time       time.Time `json:"time"`
}

// FillsData stores fills' data
type FillsData struct {
	Fee           float64   `json:"fee"`
	FeeCurrency   string    `json:"feeCurrency"`
	FeeRate       float64   `json:"feeRate"`
	Future        string    `json:"future"`
	ID            int64     `json:"id"`
	Liquidity     string    `json:"liquidity"`
	Market        string    `json:"market"`
	BaseCurrency  string    `json:"baseCurrency"`
	QuoteCurrency string    `json:"quoteCurrency"`
	OrderID       int64     `json:"orderId"`
	TradeID       int64     `json:"tradeId"`
	Price         float64   `json:"price"`
	Side          string    `json:"side"`
	Size          float64   `json:"size"`
	Time          time.Time `json:"time"`
	OrderType     string    `json:"type"`
}

// FundingPaymentsData stores funding payments' data
type FundingPaymentsData struct {
	Future  string    `json:"future"`
	ID      int64     `json:"id"`
	Payment float64   `json:"payment"`
	Time    time.Time `json:"time"`
	Rate    float64   `json:"rate"`
}

// BorrowRate stores the spot margin borrow rate of a coin
type BorrowRate struct {
	Coin     string  `json:"coin"`
	Estimate float64 `json:"estimate"`
	Previous float64 `json:"previous"`
}

// BorrowHistory stores a spot margin borrow payment
type BorrowHistory struct {
	Coin string    `json:"coin"`
	Cost float64   `json:"cost"`
	Rate float64   `json:"rate"`
	Size float64   `json:"size"`
	Time time.Time `json:"time"`
}

// LendingHistory stores a spot margin lending payment
type LendingHistory struct {
	Coin     string    `json:"coin"`
	Proceeds float64   `json:"proceeds"`
	Rate     float64   `json:"rate"`
	Size     float64   `json:"size"`
	Time     time.Time `json:"time"`
}

// MarginMarketInfo stores spot margin details of a coin in a market
type MarginMarketInfo struct {
	Coin          string  `json:"coin"`
	Borrowed      float64 `json:"borrowed"`
	Free          float64 `json:"free"`
	EstimatedRate float64 `json:"estimatedRate"`
	PreviousRate  float64 `json:"previousRate"`
}

// StakingBalance stores the staking state of a coin
type StakingBalance struct {
	Coin                   string  `json:"coin"`
	LifetimeRewards        float64 `json:"lifetimeRewards"`
	ScheduledToUnstake     float64 `json:"scheduledToUnstake"`
	Staked                 float64 `json:"staked"`
	UnstakeRequestedAmount float64 `json:"unstakeRequestedAmount"`
}

// Stake stores a staking request
type Stake struct {
	ID        int64     `json:"id"`
	Coin      string    `json:"coin"`
	Size      float64   `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// StakingReward stores a staking reward payment
type StakingReward struct {
	ID     int64     `json:"id"`
	Coin   string    `json:"coin"`
	Size   float64   `json:"size"`
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// Subaccount stores subaccount details
type Subaccount struct {
	Nickname    string `json:"nickname"`
	Deletable   bool   `json:"deletable"`
	Editable    bool   `json:"editable"`
	Competition bool   `json:"competition"`
}

// LatencyStats stores order latency statistics per bucket
type LatencyStats struct {
	Bursty bool    `json:"bursty"`
	P50    float64 `json:"p50"`
	Count  int64   `json:"requestCount"`
}

// PlaceOrderRequest holds the parameters of a new order. Type defaults to a
// limit order; market orders are sent with a null price.
type PlaceOrderRequest struct {
	Market        string
	Side          string
	Type          string
	Price         float64
	Size          float64
	ReduceOnly    bool
	IOC           bool
	PostOnly      bool
	ClientID      null.String
	RejectAfterTS null.Float64
}

// ModifyOrderRequest identifies an order by exactly one of ExistingOrderID
// and ExistingClientOrderID, and changes at most one of Price and Size
type ModifyOrderRequest struct {
	ExistingOrderID       string
	ExistingClientOrderID string
	Price                 null.Float64
	Size                  null.Float64
	ClientID              null.String
}

// ConditionalOrderRequest holds the parameters of a trigger order. Type is
// one of Stop, TakeProfit or TrailingStop. LimitPrice makes the triggered
// order a limit order, otherwise a market order is sent on trigger.
type ConditionalOrderRequest struct {
	Market               string
	Side                 string
	Size                 float64
	Type                 string
	TriggerPrice         null.Float64
	TrailValue           null.Float64
	LimitPrice           null.Float64
	ReduceOnly           bool
	CancelLimitOnTrigger null.Bool
}

// CancelOrdersRequest cancels open orders, optionally restricted to a market
// and to one order family
type CancelOrdersRequest struct {
	Market                string
	ConditionalOrdersOnly null.Bool
	LimitOrdersOnly       null.Bool
}

// OrderHistoryRequest filters the order history
type OrderHistoryRequest struct {
	Market    string
	Side      string
	OrderType string
	StartTime time.Time
	EndTime   time.Time
}

// ConditionalOrderHistoryRequest filters the conditional order history
type ConditionalOrderHistoryRequest struct {
	Market    string
	Side      string
	Type      string
	OrderType string
	StartTime time.Time
	EndTime   time.Time
}

// FillsRequest filters account fills
type FillsRequest struct {
	Market    string
	StartTime time.Time
	EndTime   time.Time
	MinID     null.Int64
	OrderID   null.Int64
}

// WithdrawalFeeRequest describes a prospective withdrawal
type WithdrawalFeeRequest struct {
	Coin    string
	Size    float64
	Address string
	Method  string
	Tag     string
}

// FiatWithdrawalRequest withdraws fiat to a saved address. When Code is
// empty and the client holds an OTP secret, a TOTP code is generated.
type FiatWithdrawalRequest struct {
	Coin           string
	Size           float64
	SavedAddressID int64
	Code           string
}

// WithdrawRequest withdraws a coin to an address
type WithdrawRequest struct {
	Coin     string
	Size     float64
	Address  string
	Tag      string
	Method   string
	Password string
	Code     string
}
