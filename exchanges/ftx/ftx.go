package ftx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/basis-arb/ftxclient/common"
	"github.com/basis-arb/ftxclient/config"
	"github.com/basis-arb/ftxclient/exchanges/account"
	"github.com/basis-arb/ftxclient/exchanges/request"
	"github.com/pquerna/otp/totp"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

// Ftx is the overarching type across this package
type Ftx struct {
	Name          string
	Verbose       bool
	HTTPDebugging bool

	apiURL     string
	creds      account.Credentials
	signer     *Signer
	requester  *request.Requester
	httpClient *http.Client
	rateLimit  int
	now        func() time.Time
}

const (
	ftxAPIURL = "https://ftx.com/api"

	// Public endpoints
	getMarkets           = "/markets"
	getMarket            = "/markets/%s"
	getOrderbook         = "/markets/%s/orderbook"
	getTrades            = "/markets/%s/trades"
	getHistoricalData    = "/markets/%s/candles"
	getLastHistorical    = "/markets/%s/candles/last"
	getFutures           = "/futures"
	getFuture            = "/futures/%s"
	getExpiredFutures    = "/expired_futures"
	getFutureStats       = "/futures/%s/stats"
	getFundingRates      = "/funding_rates"
	getMarginMarketInfo  = "/spot_margin/market_info"
	getMarginBorrowRates = "/spot_margin/borrow_rates"

	// Authenticated endpoints
	getAccountInfo          = "/account"
	getPositions            = "/positions"
	getCoins                = "/wallet/coins"
	getBalances             = "/wallet/balances"
	getAllWalletBalances    = "/wallet/all_balances"
	getDepositAddress       = "/wallet/deposit_address/%s"
	getDepositHistory       = "/wallet/deposits"
	getWithdrawalHistory    = "/wallet/withdrawals"
	withdrawRequest         = "/wallet/withdrawals"
	getWithdrawalFee        = "/wallet/withdrawal_fee"
	getSavedAddresses       = "/wallet/saved_addresses"
	fiatWithdrawalRequest   = "/wallet/fiat_withdrawals"
	getOpenOrders           = "/orders"
	getOrderHistory         = "/orders/history"
	placeOrder              = "/orders"
	modifyOrder             = "/orders/%s/modify"
	modifyOrderByClientID   = "/orders/by_client_id/%s/modify"
	deleteOrder             = "/orders/%s"
	deleteOrders            = "/orders"
	getFills                = "/fills"
	getOpenTriggerOrders    = "/conditional_orders"
	getTriggerOrderHistory  = "/conditional_orders/history"
	getTriggerOrderTriggers = "/conditional_orders/%s/triggers"
	placeTriggerOrder       = "/conditional_orders"
	getFundingPayments      = "/funding_payments"
	getMarginBorrowHistory  = "/spot_margin/borrow_history"
	getMarginLendingHistory = "/spot_margin/lending_history"
	getStakingBalances      = "/staking/balances"
	getStakes               = "/staking/stakes"
	getStakingRewards       = "/staking/staking_rewards"
	serumStakes             = "/srm_stakes/stakes"
	subaccounts             = "/subaccounts"
	getSubaccountBalances   = "/subaccounts/%s/balances"
	getLatencyStats         = "/stats/latency_stats"

	// Wire names of conditional order types
	stopOrderType         = "stop"
	trailingStopOrderType = "trailingStop"
	takeProfitOrderType   = "takeProfit"
)

// Option configures a client on construction
type Option func(*Ftx)

// WithAPIURL overrides the REST base URL, including its /api path
func WithAPIURL(u string) Option {
	return func(f *Ftx) {
		f.apiURL = u
	}
}

// WithHTTPClient sets the HTTP client used for every request
func WithHTTPClient(c *http.Client) Option {
	return func(f *Ftx) {
		f.httpClient = c
	}
}

// WithRateLimit throttles the client to perSecond requests, 0 disables
// throttling
func WithRateLimit(perSecond int) Option {
	return func(f *Ftx) {
		f.rateLimit = perSecond
	}
}

// WithVerbose logs every request and raw response
func WithVerbose(verbose bool) Option {
	return func(f *Ftx) {
		f.Verbose = verbose
	}
}

// WithHTTPDebugging dumps the wire form of every request and response
func WithHTTPDebugging(debug bool) Option {
	return func(f *Ftx) {
		f.HTTPDebugging = debug
	}
}

// WithClock sets the time source used for signing and relative time windows
func WithClock(now func() time.Time) Option {
	return func(f *Ftx) {
		f.now = now
	}
}

// New returns a client for the supplied credentials. Empty credentials give a
// client limited to public endpoints.
func New(creds account.Credentials, opts ...Option) (*Ftx, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	f := &Ftx{
		Name:   "FTX",
		apiURL: ftxAPIURL,
		creds:  creds,
		now:    time.Now,
	}
	for _, o := range opts {
		o(f)
	}
	u, err := url.Parse(f.apiURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: api url %q", ErrInvalidArgument, f.apiURL)
	}
	if creds.CanSign() {
		f.signer, err = NewSigner(creds, f.now)
		if err != nil {
			return nil, err
		}
	}
	var reqOpts []request.RequesterOption
	if f.rateLimit > 0 {
		reqOpts = append(reqOpts, request.WithLimiter(request.NewRateLimit(time.Second, f.rateLimit)))
	}
	f.requester, err = request.New(f.Name, f.httpClient, reqOpts...)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NewFromConfig returns a client using the exchange settings and credentials
// of c
func NewFromConfig(c *config.Config, opts ...Option) (*Ftx, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: config", common.ErrNilPointer)
	}
	base := []Option{
		WithAPIURL(c.Exchange.APIURL),
		WithHTTPClient(&http.Client{Timeout: c.Exchange.HTTPTimeout}),
		WithRateLimit(c.Exchange.RateLimit),
		WithVerbose(c.Exchange.Verbose),
		WithHTTPDebugging(c.Exchange.HTTPDebugging),
	}
	return New(c.GetCredentials(), append(base, opts...)...)
}

// IsAuthenticated reports whether the client can call private endpoints
func (f *Ftx) IsAuthenticated() bool {
	return f.signer != nil
}

// Request describes a single REST call
type Request struct {
	Method string
	Path   string
	Query  *Params
	Body   interface{}
	// Auth marks endpoints that fail without credentials. Requests are signed
	// whenever the client holds credentials.
	Auth bool
}

// SendPayload sends r once and decodes the envelope result into result,
// which may be nil when the result is not needed
func (f *Ftx) SendPayload(ctx context.Context, r *Request, result interface{}) error {
	if r == nil {
		return errRequestNil
	}
	if r.Auth && f.signer == nil {
		return ErrAuthenticationRequired
	}

	target := f.apiURL + r.Path
	if q := r.Query.Encode(); q != "" {
		target += "?" + q
	}
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var body []byte
	if r.Body != nil {
		body, err = json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}

	resp, err := f.requester.SendPayload(ctx, func() (*request.Item, error) {
		headers := make(map[string]string)
		if body != nil {
			headers["Content-Type"] = "application/json"
		}
		if f.signer != nil {
			auth, err := f.signer.Sign(ctx, r.Method, u.RequestURI(), body)
			if err != nil {
				return nil, err
			}
			for k, v := range auth {
				headers[k] = v
			}
		}
		return &request.Item{
			Method:        r.Method,
			Path:          target,
			Headers:       headers,
			Body:          body,
			Verbose:       f.Verbose,
			HTTPDebugging: f.HTTPDebugging,
		}, nil
	})
	if err != nil {
		return err
	}

	raw, err := processResponse(resp)
	if err != nil {
		return err
	}
	if result == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return &MalformedResponseError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       resp.Body,
			Err:        fmt.Errorf("%w: %v", errUnexpectedResult, err),
		}
	}
	return nil
}

// sendHTTPRequest sends a GET to a public endpoint
func (f *Ftx) sendHTTPRequest(ctx context.Context, path string, params *Params, result interface{}) error {
	return f.SendPayload(ctx, &Request{Method: http.MethodGet, Path: path, Query: params}, result)
}

// sendAuthHTTPRequest sends a request to a private endpoint. GET data is sent
// as query parameters, otherwise as a JSON body.
func (f *Ftx) sendAuthHTTPRequest(ctx context.Context, method, path string, params *Params, data, result interface{}) error {
	return f.SendPayload(ctx, &Request{
		Method: method,
		Path:   path,
		Query:  params,
		Body:   data,
		Auth:   true,
	}, result)
}

func checkTimeRange(start, end time.Time) error {
	if err := common.StartEndTimeCheck(start, end); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

func timeRange(start, end time.Time) *Params {
	p := NewParams()
	p.Set("start_time", start)
	p.Set("end_time", end)
	return p
}

// GetMarkets gets market data
func (f *Ftx) GetMarkets(ctx context.Context) ([]MarketData, error) {
	var resp []MarketData
	return resp, f.sendHTTPRequest(ctx, getMarkets, nil, &resp)
}

// GetMarket gets market data for a provided market name
func (f *Ftx) GetMarket(ctx context.Context, marketName string) (*MarketData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	var resp MarketData
	return &resp, f.sendHTTPRequest(ctx, fmt.Sprintf(getMarket, marketName), nil, &resp)
}

// GetMinProvideSize returns the minimum order size that provides liquidity in
// a market
func (f *Ftx) GetMinProvideSize(ctx context.Context, marketName string) (float64, error) {
	m, err := f.GetMarket(ctx, marketName)
	if err != nil {
		return 0, err
	}
	return m.MinProvideSize, nil
}

// GetOrderbook gets orderbook for a given market, a zero depth uses the
// exchange default
func (f *Ftx) GetOrderbook(ctx context.Context, marketName string, depth int64) (*OrderbookData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	params := NewParams()
	if depth > 0 {
		params.Set("depth", depth)
	}
	var raw rawOrderbook
	if err := f.sendHTTPRequest(ctx, fmt.Sprintf(getOrderbook, marketName), params, &raw); err != nil {
		return nil, err
	}
	resp := &OrderbookData{
		MarketName: marketName,
		Asks:       make([]OData, len(raw.Asks)),
		Bids:       make([]OData, len(raw.Bids)),
	}
	for x := range raw.Asks {
		resp.Asks[x] = OData{Price: raw.Asks[x][0], Size: raw.Asks[x][1]}
	}
	for y := range raw.Bids {
		resp.Bids[y] = OData{Price: raw.Bids[y][0], Size: raw.Bids[y][1]}
	}
	return resp, nil
}

// GetTrades returns a single page of at most 100 trades, newest first,
// between the optional start and end times
func (f *Ftx) GetTrades(ctx context.Context, marketName string, start, end time.Time) ([]TradeData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	if err := checkTimeRange(start, end); err != nil {
		return nil, err
	}
	return f.getTradesPage(ctx, marketName, start, end)
}

func (f *Ftx) getTradesPage(ctx context.Context, marketName string, start, end time.Time) ([]TradeData, error) {
	var resp []TradeData
	return resp, f.sendHTTPRequest(ctx, fmt.Sprintf(getTrades, marketName), timeRange(start, end), &resp)
}

// GetHistoricalPrices gets OHLCV candles of the given resolution for a market
func (f *Ftx) GetHistoricalPrices(ctx context.Context, marketName string, resolution time.Duration, start, end time.Time) ([]OHLCVData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	if resolution < time.Second {
		return nil, errInvalidResolution
	}
	if err := checkTimeRange(start, end); err != nil {
		return nil, err
	}
	params := NewParams()
	params.Set("resolution", int64(resolution/time.Second))
	params.Set("start_time", start)
	params.Set("end_time", end)
	var resp []OHLCVData
	return resp, f.sendHTTPRequest(ctx, fmt.Sprintf(getHistoricalData, marketName), params, &resp)
}

// GetLastHistoricalPrices gets the latest candle of the given resolution
func (f *Ftx) GetLastHistoricalPrices(ctx context.Context, marketName string, resolution time.Duration) (*OHLCVData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	if resolution < time.Second {
		return nil, errInvalidResolution
	}
	params := NewParams()
	params.Set("resolution", int64(resolution/time.Second))
	var resp OHLCVData
	return &resp, f.sendHTTPRequest(ctx, fmt.Sprintf(getLastHistorical, marketName), params, &resp)
}

// GetFutures gets data on futures
func (f *Ftx) GetFutures(ctx context.Context) ([]FuturesData, error) {
	var resp []FuturesData
	return resp, f.sendHTTPRequest(ctx, getFutures, nil, &resp)
}

// GetFuture gets data on a given future
func (f *Ftx) GetFuture(ctx context.Context, futureName string) (*FuturesData, error) {
	if futureName == "" {
		return nil, errMarketNameEmpty
	}
	var resp FuturesData
	return &resp, f.sendHTTPRequest(ctx, fmt.Sprintf(getFuture, futureName), nil, &resp)
}

// GetExpiredFutures gets data on expired futures
func (f *Ftx) GetExpiredFutures(ctx context.Context) ([]FuturesData, error) {
	var resp []FuturesData
	return resp, f.sendHTTPRequest(ctx, getExpiredFutures, nil, &resp)
}

// GetFutureStats gets data on a given future's stats
func (f *Ftx) GetFutureStats(ctx context.Context, futureName string) (*FutureStatsData, error) {
	if futureName == "" {
		return nil, errMarketNameEmpty
	}
	var resp FutureStatsData
	return &resp, f.sendHTTPRequest(ctx, fmt.Sprintf(getFutureStats, futureName), nil, &resp)
}

// GetFundingRates gets funding rates for an optional future and time window
func (f *Ftx) GetFundingRates(ctx context.Context, future string, start, end time.Time) ([]FundingRatesData, error) {
	if err := checkTimeRange(start, end); err != nil {
		return nil, err
	}
	params := NewParams()
	params.Set("future", future)
	params.Set("start_time", start)
	params.Set("end_time", end)
	var resp []FundingRatesData
	return resp, f.sendHTTPRequest(ctx, getFundingRates, params, &resp)
}

// GetAccountInfo gets account info
func (f *Ftx) GetAccountInfo(ctx context.Context) (*AccountInfoData, error) {
	var resp AccountInfoData
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getAccountInfo, nil, nil, &resp)
}

// GetPositions gets the users positions
func (f *Ftx) GetPositions(ctx context.Context, showAvgPrice bool) ([]PositionData, error) {
	params := NewParams()
	params.Set("showAvgPrice", showAvgPrice)
	var resp []PositionData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getPositions, params, nil, &resp)
}

// GetPosition returns the position held in a future or ErrPositionNotFound
func (f *Ftx) GetPosition(ctx context.Context, futureName string, showAvgPrice bool) (*PositionData, error) {
	if futureName == "" {
		return nil, errMarketNameEmpty
	}
	positions, err := f.GetPositions(ctx, showAvgPrice)
	if err != nil {
		return nil, err
	}
	for i := range positions {
		if positions[i].Future == futureName {
			return &positions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPositionNotFound, futureName)
}

// GetCoins gets coins' data in the account wallet
func (f *Ftx) GetCoins(ctx context.Context) ([]WalletCoinsData, error) {
	var resp []WalletCoinsData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getCoins, nil, nil, &resp)
}

// GetBalances gets balances of the account
func (f *Ftx) GetBalances(ctx context.Context) ([]BalancesData, error) {
	var resp []BalancesData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getBalances, nil, nil, &resp)
}

// GetAllBalances gets the balances of every wallet including subaccounts
func (f *Ftx) GetAllBalances(ctx context.Context) (AllWalletBalances, error) {
	var resp AllWalletBalances
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getAllWalletBalances, nil, nil, &resp)
}

// GetTotalUSDBalance sums the USD value of the account's balances
func (f *Ftx) GetTotalUSDBalance(ctx context.Context) (decimal.Decimal, error) {
	balances, err := f.GetBalances(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return sumUSDValue(balances), nil
}

// GetTotalAccountUSDBalance sums the USD value of every wallet including
// subaccounts
func (f *Ftx) GetTotalAccountUSDBalance(ctx context.Context) (decimal.Decimal, error) {
	wallets, err := f.GetAllBalances(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, balances := range wallets {
		total = total.Add(sumUSDValue(balances))
	}
	return total, nil
}

func sumUSDValue(balances []BalancesData) decimal.Decimal {
	total := decimal.Zero
	for i := range balances {
		total = total.Add(decimal.NewFromFloat(balances[i].USDValue))
	}
	return total
}

// GetDepositAddress gets the deposit address for a coin
func (f *Ftx) GetDepositAddress(ctx context.Context, coin string) (*DepositData, error) {
	if coin == "" {
		return nil, errCoinEmpty
	}
	var resp DepositData
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getDepositAddress, url.PathEscape(coin)), nil, nil, &resp)
}

// GetDepositHistory gets deposit history
func (f *Ftx) GetDepositHistory(ctx context.Context) ([]TransactionData, error) {
	var resp []TransactionData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getDepositHistory, nil, nil, &resp)
}

// GetWithdrawals gets withdrawal history within an optional time window
func (f *Ftx) GetWithdrawals(ctx context.Context, start, end time.Time) ([]TransactionData, error) {
	if err := checkTimeRange(start, end); err != nil {
		return nil, err
	}
	var resp []TransactionData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getWithdrawalHistory, timeRange(start, end), nil, &resp)
}

// GetWithdrawalFee estimates the fee of a withdrawal
func (f *Ftx) GetWithdrawalFee(ctx context.Context, req *WithdrawalFeeRequest) (*WithdrawalFeeData, error) {
	if req == nil {
		return nil, errRequestNil
	}
	if req.Coin == "" {
		return nil, errCoinEmpty
	}
	if req.Size <= 0 {
		return nil, errInvalidSize
	}
	if req.Address == "" {
		return nil, errAddressEmpty
	}
	params := NewParams()
	params.Set("coin", req.Coin)
	params.Set("size", req.Size)
	params.Set("address", req.Address)
	params.Set("method", req.Method)
	params.Set("tag", req.Tag)
	var resp WithdrawalFeeData
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getWithdrawalFee, params, nil, &resp)
}

// GetSavedAddresses gets the saved withdrawal addresses, optionally for one
// coin
func (f *Ftx) GetSavedAddresses(ctx context.Context, coin string) ([]SavedAddress, error) {
	params := NewParams()
	params.Set("coin", coin)
	var resp []SavedAddress
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getSavedAddresses, params, nil, &resp)
}

// Withdraw sends a withdrawal request
func (f *Ftx) Withdraw(ctx context.Context, req *WithdrawRequest) (*TransactionData, error) {
	if req == nil {
		return nil, errRequestNil
	}
	if req.Coin == "" {
		return nil, errCoinEmpty
	}
	if req.Size <= 0 {
		return nil, errInvalidSize
	}
	if req.Address == "" {
		return nil, errAddressEmpty
	}
	code, err := f.twoFactorCode(req.Code)
	if err != nil {
		return nil, err
	}
	data := make(bodyParams)
	data.set("coin", req.Coin)
	data.set("size", req.Size)
	data.set("address", req.Address)
	data.set("tag", req.Tag)
	data.set("method", req.Method)
	data.set("password", req.Password)
	data.set("code", code)
	var resp TransactionData
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodPost, withdrawRequest, nil, data, &resp)
}

// SubmitFiatWithdrawal withdraws fiat to a saved address
func (f *Ftx) SubmitFiatWithdrawal(ctx context.Context, req *FiatWithdrawalRequest) (*TransactionData, error) {
	if req == nil {
		return nil, errRequestNil
	}
	if req.Coin == "" {
		return nil, errCoinEmpty
	}
	if req.Size <= 0 {
		return nil, errInvalidSize
	}
	if req.SavedAddressID <= 0 {
		return nil, fmt.Errorf("%w: saved address id", errInvalidID)
	}
	code, err := f.twoFactorCode(req.Code)
	if err != nil {
		return nil, err
	}
	data := make(bodyParams)
	data.set("coin", req.Coin)
	data.set("size", req.Size)
	data.set("savedAddressId", req.SavedAddressID)
	data.set("code", code)
	var resp TransactionData
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodPost, fiatWithdrawalRequest, nil, data, &resp)
}

// twoFactorCode returns code, or a TOTP code generated from the credentials
// when code is empty and an OTP secret is configured
func (f *Ftx) twoFactorCode(code string) (string, error) {
	if code != "" || f.creds.OTPSecret == "" {
		return code, nil
	}
	generated, err := totp.GenerateCode(f.creds.OTPSecret, f.now())
	if err != nil {
		return "", fmt.Errorf("%w: generating 2fa code: %v", ErrInvalidArgument, err)
	}
	return generated, nil
}

// GetOpenOrders gets open orders, optionally for one market
func (f *Ftx) GetOpenOrders(ctx context.Context, marketName string) ([]OrderData, error) {
	params := NewParams()
	params.Set("market", marketName)
	var resp []OrderData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getOpenOrders, params, nil, &resp)
}

// GetOrderHistory gets order history
func (f *Ftx) GetOrderHistory(ctx context.Context, req *OrderHistoryRequest) ([]OrderData, error) {
	if req == nil {
		req = &OrderHistoryRequest{}
	}
	if err := checkTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	params := NewParams()
	params.Set("market", req.Market)
	params.Set("side", req.Side)
	params.Set("orderType", req.OrderType)
	params.Set("start_time", req.StartTime)
	params.Set("end_time", req.EndTime)
	var resp []OrderData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getOrderHistory, params, nil, &resp)
}

// PlaceOrder places a limit or market order
func (f *Ftx) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*OrderData, error) {
	if req == nil {
		return nil, errRequestNil
	}
	if req.Market == "" {
		return nil, errMarketNameEmpty
	}
	if err := checkSide(req.Side); err != nil {
		return nil, err
	}
	orderType := req.Type
	if orderType == "" {
		orderType = Limit
	}
	if req.Size <= 0 {
		return nil, errInvalidSize
	}
	data := make(bodyParams)
	data.set("market", req.Market)
	data.set("side", req.Side)
	switch orderType {
	case Limit:
		if req.Price <= 0 {
			return nil, errInvalidPrice
		}
		data["price"] = req.Price
	case Market:
		data["price"] = nil
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidOrderType, req.Type)
	}
	data.set("size", req.Size)
	data.set("type", orderType)
	data.set("reduceOnly", req.ReduceOnly)
	data.set("ioc", req.IOC)
	data.set("postOnly", req.PostOnly)
	data.set("clientId", req.ClientID)
	data.set("rejectAfterTs", req.RejectAfterTS)
	var resp OrderData
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodPost, placeOrder, nil, data, &resp)
}

// ModifyOrder changes the price or the size of an open order, which is then
// cancelled and replaced with a new order ID
func (f *Ftx) ModifyOrder(ctx context.Context, req *ModifyOrderRequest) (*OrderData, error) {
	if req == nil {
		return nil, errRequestNil
	}
	if (req.ExistingOrderID == "") == (req.ExistingClientOrderID == "") {
		return nil, errOrderIDSelection
	}
	if req.Price.Valid && req.Size.Valid {
		return nil, errModifyPriceAndSize
	}
	path := fmt.Sprintf(modifyOrder, url.PathEscape(req.ExistingOrderID))
	if req.ExistingClientOrderID != "" {
		path = fmt.Sprintf(modifyOrderByClientID, url.PathEscape(req.ExistingClientOrderID))
	}
	data := make(bodyParams)
	data.set("size", req.Size)
	data.set("price", req.Price)
	data.set("clientId", req.ClientID)
	var resp OrderData
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodPost, path, nil, data, &resp)
}

// CancelOrder deletes an order by its exchange ID
func (f *Ftx) CancelOrder(ctx context.Context, orderID string) (string, error) {
	if orderID == "" {
		return "", errInvalidID
	}
	var resp string
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodDelete, fmt.Sprintf(deleteOrder, url.PathEscape(orderID)), nil, nil, &resp)
}

// CancelOrders deletes all open orders matching req
func (f *Ftx) CancelOrders(ctx context.Context, req *CancelOrdersRequest) (string, error) {
	if req == nil {
		req = &CancelOrdersRequest{}
	}
	data := make(bodyParams)
	data.set("market", req.Market)
	data.set("conditionalOrdersOnly", req.ConditionalOrdersOnly)
	data.set("limitOrdersOnly", req.LimitOrdersOnly)
	var resp string
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodDelete, deleteOrders, nil, data, &resp)
}

// GetFills gets fills' data
func (f *Ftx) GetFills(ctx context.Context, req *FillsRequest) ([]FillsData, error) {
	if req == nil {
		req = &FillsRequest{}
	}
	if err := checkTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	params := NewParams()
	params.Set("market", req.Market)
	params.Set("start_time", req.StartTime)
	params.Set("end_time", req.EndTime)
	params.Set("minId", req.MinID)
	params.Set("orderId", req.OrderID)
	var resp []FillsData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getFills, params, nil, &resp)
}

// GetConditionalOrders gets open trigger orders, optionally for one market
func (f *Ftx) GetConditionalOrders(ctx context.Context, marketName string) ([]TriggerOrderData, error) {
	params := NewParams()
	params.Set("market", marketName)
	var resp []TriggerOrderData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getOpenTriggerOrders, params, nil, &resp)
}

// GetConditionalOrderHistory gets trigger orders that are no longer open
func (f *Ftx) GetConditionalOrderHistory(ctx context.Context, req *ConditionalOrderHistoryRequest) ([]TriggerOrderData, error) {
	if req == nil {
		req = &ConditionalOrderHistoryRequest{}
	}
	if err := checkTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	params := NewParams()
	params.Set("market", req.Market)
	params.Set("side", req.Side)
	if req.Type != "" {
		wire, err := conditionalWireType(req.Type)
		if err != nil {
			return nil, err
		}
		params.Set("type", wire)
	}
	params.Set("orderType", req.OrderType)
	params.Set("start_time", req.StartTime)
	params.Set("end_time", req.EndTime)
	var resp []TriggerOrderData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getTriggerOrderHistory, params, nil, &resp)
}

// GetTriggerOrderTriggers gets the triggers of a trigger order
func (f *Ftx) GetTriggerOrderTriggers(ctx context.Context, orderID string) ([]TriggerData, error) {
	if orderID == "" {
		return nil, errInvalidID
	}
	var resp []TriggerData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getTriggerOrderTriggers, url.PathEscape(orderID)), nil, nil, &resp)
}

// PlaceConditionalOrder places a stop, take profit or trailing stop order
func (f *Ftx) PlaceConditionalOrder(ctx context.Context, req *ConditionalOrderRequest) (*TriggerOrderData, error) {
	if req == nil {
		return nil, errRequestNil
	}
	wireType, err := conditionalWireType(req.Type)
	if err != nil {
		return nil, err
	}
	switch req.Type {
	case Stop, TakeProfit:
		if !req.TriggerPrice.Valid {
			return nil, errTriggerPriceRequired
		}
	case TrailingStop:
		if !req.TrailValue.Valid {
			return nil, errTrailValueRequired
		}
		if req.TriggerPrice.Valid {
			return nil, errTrailingStopTriggerPrice
		}
	}
	if req.Market == "" {
		return nil, errMarketNameEmpty
	}
	if err := checkSide(req.Side); err != nil {
		return nil, err
	}
	if req.Size <= 0 {
		return nil, errInvalidSize
	}
	cancelLimit := req.CancelLimitOnTrigger
	if !cancelLimit.Valid {
		cancelLimit = null.BoolFrom(true)
	}
	data := make(bodyParams)
	data.set("market", req.Market)
	data.set("side", req.Side)
	data.set("triggerPrice", req.TriggerPrice)
	data.set("size", req.Size)
	data.set("reduceOnly", req.ReduceOnly)
	data.set("type", wireType)
	data.set("cancelLimitOnTrigger", cancelLimit)
	data.set("orderPrice", req.LimitPrice)
	data.set("trailValue", req.TrailValue)
	var resp TriggerOrderData
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodPost, placeTriggerOrder, nil, data, &resp)
}

func conditionalWireType(t string) (string, error) {
	switch t {
	case Stop:
		return stopOrderType, nil
	case TakeProfit:
		return takeProfitOrderType, nil
	case TrailingStop:
		return trailingStopOrderType, nil
	}
	return "", fmt.Errorf("%w: %q", errInvalidTriggerType, t)
}

func checkSide(side string) error {
	if side != Buy && side != Sell {
		return fmt.Errorf("%w: %q", errInvalidOrderSide, side)
	}
	return nil
}

// GetFundingPayments gets funding payments within an optional time window,
// optionally for one future
func (f *Ftx) GetFundingPayments(ctx context.Context, start, end time.Time, future string) ([]FundingPaymentsData, error) {
	if err := checkTimeRange(start, end); err != nil {
		return nil, err
	}
	params := timeRange(start, end)
	params.Set("future", future)
	var resp []FundingPaymentsData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getFundingPayments, params, nil, &resp)
}

// GetBorrowRates gets the spot margin borrow rates
func (f *Ftx) GetBorrowRates(ctx context.Context) ([]BorrowRate, error) {
	var resp []BorrowRate
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getMarginBorrowRates, nil, nil, &resp)
}

// GetBorrowHistory gets spot margin borrow payments
func (f *Ftx) GetBorrowHistory(ctx context.Context, start, end time.Time) ([]BorrowHistory, error) {
	if err := checkTimeRange(start, end); err != nil {
		return nil, err
	}
	var resp []BorrowHistory
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getMarginBorrowHistory, timeRange(start, end), nil, &resp)
}

// GetLendingHistory gets spot margin lending payments
func (f *Ftx) GetLendingHistory(ctx context.Context, start, end time.Time) ([]LendingHistory, error) {
	if err := checkTimeRange(start, end); err != nil {
		return nil, err
	}
	var resp []LendingHistory
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getMarginLendingHistory, timeRange(start, end), nil, &resp)
}

// GetMarginMarketInfo gets spot margin info for each coin of a market
func (f *Ftx) GetMarginMarketInfo(ctx context.Context, marketName string) ([]MarginMarketInfo, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	params := NewParams()
	params.Set("market", marketName)
	var resp []MarginMarketInfo
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getMarginMarketInfo, params, nil, &resp)
}

// GetStakingBalances gets staking balances
func (f *Ftx) GetStakingBalances(ctx context.Context) ([]StakingBalance, error) {
	var resp []StakingBalance
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getStakingBalances, nil, nil, &resp)
}

// GetStakes gets staking requests
func (f *Ftx) GetStakes(ctx context.Context) ([]Stake, error) {
	var resp []Stake
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getStakes, nil, nil, &resp)
}

// GetStakingRewards gets staking rewards within an optional time window
func (f *Ftx) GetStakingRewards(ctx context.Context, start, end time.Time) ([]StakingReward, error) {
	if err := checkTimeRange(start, end); err != nil {
		return nil, err
	}
	var resp []StakingReward
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getStakingRewards, timeRange(start, end), nil, &resp)
}

// PlaceStakingRequest stakes size of coin
func (f *Ftx) PlaceStakingRequest(ctx context.Context, coin string, size float64) (*Stake, error) {
	if coin == "" {
		return nil, errCoinEmpty
	}
	if size <= 0 {
		return nil, errInvalidSize
	}
	data := make(bodyParams)
	data.set("coin", coin)
	data.set("size", size)
	var resp Stake
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodPost, serumStakes, nil, data, &resp)
}

// CreateSubaccount creates a subaccount
func (f *Ftx) CreateSubaccount(ctx context.Context, nickname string) (*Subaccount, error) {
	if nickname == "" {
		return nil, errNicknameEmpty
	}
	data := make(bodyParams)
	data.set("nickname", nickname)
	var resp Subaccount
	return &resp, f.sendAuthHTTPRequest(ctx, http.MethodPost, subaccounts, nil, data, &resp)
}

// GetSubaccountBalances gets the balances of a subaccount
func (f *Ftx) GetSubaccountBalances(ctx context.Context, nickname string) ([]BalancesData, error) {
	if nickname == "" {
		return nil, errNicknameEmpty
	}
	var resp []BalancesData
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getSubaccountBalances, url.PathEscape(nickname)), nil, nil, &resp)
}

// GetLatencyStats gets order latency statistics over the last days, optionally
// for a subaccount
func (f *Ftx) GetLatencyStats(ctx context.Context, days int64, subaccountNickname string) ([]LatencyStats, error) {
	if days <= 0 {
		return nil, errInvalidDays
	}
	params := NewParams()
	params.Set("days", days)
	params.Set("subaccount_nickname", subaccountNickname)
	var resp []LatencyStats
	return resp, f.sendAuthHTTPRequest(ctx, http.MethodGet, getLatencyStats, params, nil, &resp)
}
