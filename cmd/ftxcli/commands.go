package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/basis-arb/ftxclient/exchanges/ftx"
	"github.com/basis-arb/ftxclient/strategy/basis"
	"github.com/logrusorgru/aurora"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

const timeFormat = time.DateTime

var (
	errCoinRequired   = errors.New("a coin is required, for example BTC")
	errMarketRequired = errors.New("a market is required, for example BTC/USD")
	errInvalidDays    = errors.New("days must be greater than zero")
)

var getMarketsCommand = &cli.Command{
	Name:   "markets",
	Usage:  "lists all markets",
	Action: getMarkets,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "type",
			Aliases: []string{"t"},
			Usage:   "only list markets of this type, spot or future",
		},
	},
}

func getMarkets(c *cli.Context) error {
	client, _, err := setupClient(c)
	if err != nil {
		return err
	}
	markets, err := client.GetMarkets(c.Context)
	if err != nil {
		return err
	}
	jsonOutput(filterMarkets(markets, c.String("type")))
	return nil
}

func filterMarkets(markets []ftx.MarketData, marketType string) []ftx.MarketData {
	if marketType == "" {
		return markets
	}
	filtered := make([]ftx.MarketData, 0, len(markets))
	for i := range markets {
		if strings.EqualFold(markets[i].MarketType, marketType) {
			filtered = append(filtered, markets[i])
		}
	}
	return filtered
}

var getTradesCommand = &cli.Command{
	Name:      "trades",
	Usage:     "backfills every trade of a market between two times",
	ArgsUsage: "<market> <start> <end>",
	Action:    getTrades,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "market",
			Aliases: []string{"m"},
			Usage:   "the market to backfill, for example BTC-PERP",
		},
		&cli.StringFlag{
			Name:    "start",
			Aliases: []string{"s"},
			Usage:   "the UTC start time, formatted " + timeFormat,
			Value:   time.Now().UTC().Add(-time.Hour).Format(timeFormat),
		},
		&cli.StringFlag{
			Name:    "end",
			Aliases: []string{"e"},
			Usage:   "the UTC end time, formatted " + timeFormat,
			Value:   time.Now().UTC().Format(timeFormat),
		},
		&cli.IntFlag{
			Name:  "maxpages",
			Usage: "stops with an error after this many pages, 0 is unbounded",
		},
	},
}

func getTrades(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowCommandHelp(c, c.Command.Name)
	}
	market := c.String("market")
	if !c.IsSet("market") {
		market = c.Args().First()
	}
	if market == "" {
		return errMarketRequired
	}
	start, end, err := parseTimeRange(c, 1, 2)
	if err != nil {
		return err
	}
	client, _, err := setupClient(c)
	if err != nil {
		return err
	}
	trades, err := client.GetAllTradesWithLimit(c.Context, market, start, end, c.Int("maxpages"))
	if err != nil {
		return err
	}
	jsonOutput(trades)
	return nil
}

var getSpreadCommand = &cli.Command{
	Name:      "spread",
	Usage:     "shows the current basis between a coin's perpetual future and its USD spot market",
	ArgsUsage: "<coin>",
	Action:    getSpread,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "coin",
			Aliases: []string{"c"},
			Usage:   "the coin, for example BTC",
		},
		&cli.BoolFlag{
			Name:  "fees",
			Usage: "also shows the spread net of worst case taker fees on both legs",
		},
	},
}

func getSpread(c *cli.Context) error {
	coin, err := coinArg(c)
	if err != nil {
		return err
	}
	client, _, err := setupClient(c)
	if err != nil {
		return err
	}
	loop, err := basis.New(client)
	if err != nil {
		return err
	}
	for _, d := range []basis.Direction{basis.Positive, basis.Negative} {
		spreadPct, futurePrice, spotPrice, err := loop.Quote(c.Context, coin, d)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%-8s %s %v / %s %v: %s",
			d, basis.FutureName(coin), futurePrice, basis.SpotName(coin), spotPrice, colourSpread(spreadPct))
		if c.Bool("fees") {
			feePct, err := takerFeePct(c, client, futurePrice, spotPrice)
			if err != nil {
				return err
			}
			net := spreadPct.Abs().Sub(feePct)
			line += fmt.Sprintf(" net of fees %s", colourSpread(net))
		}
		fmt.Println(line)
	}
	return nil
}

// takerFeePct returns the fees of both legs of one unit as a percentage of
// the spot price
func takerFeePct(c *cli.Context, client *ftx.Ftx, futurePrice, spotPrice float64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, price := range []float64{futurePrice, spotPrice} {
		fee, err := client.GetFee(c.Context, &ftx.FeeBuilder{
			FeeType:       ftx.OfflineTradeFee,
			PurchasePrice: price,
			Amount:        1,
		})
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(decimal.NewFromFloat(fee))
	}
	if spotPrice <= 0 {
		return decimal.Zero, nil
	}
	return total.Div(decimal.NewFromFloat(spotPrice)).Mul(decimal.NewFromInt(100)), nil
}

func colourSpread(pct decimal.Decimal) aurora.Value {
	s := pct.StringFixed(4) + "%"
	if pct.IsNegative() {
		return aurora.Bold(aurora.Red(s))
	}
	return aurora.Bold(aurora.Green(s))
}

var getFundingCommand = &cli.Command{
	Name:      "funding",
	Usage:     "shows the average funding rate of a coin's perpetual future",
	ArgsUsage: "<coin> <days>",
	Action:    getFunding,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "coin",
			Aliases: []string{"c"},
			Usage:   "the coin, for example BTC",
		},
		&cli.IntFlag{
			Name:    "days",
			Aliases: []string{"d"},
			Usage:   "the number of days to average over",
			Value:   30,
		},
		&cli.BoolFlag{
			Name:  "payments",
			Usage: "also lists the funding the account received per day, requires credentials",
		},
	},
}

func getFunding(c *cli.Context) error {
	coin, err := coinArg(c)
	if err != nil {
		return err
	}
	days := c.Int("days")
	if !c.IsSet("days") && c.Args().Get(1) != "" {
		if days, err = strconv.Atoi(c.Args().Get(1)); err != nil {
			return err
		}
	}
	if days <= 0 {
		return errInvalidDays
	}
	client, _, err := setupClient(c)
	if err != nil {
		return err
	}
	avg, err := client.AverageFundingRate(c.Context, coin, days)
	if err != nil {
		return err
	}
	fmt.Printf("%s average funding over %d days: %s\n", basis.FutureName(coin), days, avg)
	if !c.Bool("payments") {
		return nil
	}
	end := time.Now()
	payments, err := client.DailyFundingPayments(c.Context, basis.FutureName(coin), end.Add(-time.Duration(days)*24*time.Hour), end)
	if err != nil {
		return err
	}
	for i := range payments {
		fmt.Printf("%s %s\n", payments[i].Day.Format(time.DateOnly), payments[i].Payment)
	}
	return nil
}

var getBalanceCommand = &cli.Command{
	Name:   "balance",
	Usage:  "shows the total USD value of the account wallet",
	Action: getBalance,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "sums the wallets of every sub account",
		},
	},
}

func getBalance(c *cli.Context) error {
	client, _, err := setupClient(c)
	if err != nil {
		return err
	}
	var total decimal.Decimal
	if c.Bool("all") {
		total, err = client.GetTotalAccountUSDBalance(c.Context)
	} else {
		total, err = client.GetTotalUSDBalance(c.Context)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s USD\n", total.StringFixed(2))
	return nil
}

var runArbCommand = &cli.Command{
	Name:      "arb",
	Usage:     "waits for the spread to pass the tolerance then places both legs",
	ArgsUsage: "<coin>",
	Action:    runArb,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "coin",
			Aliases: []string{"c"},
			Usage:   "the coin, defaults to strategy.coin from config",
		},
		&cli.StringFlag{
			Name:    "direction",
			Aliases: []string{"d"},
			Usage:   "positive sells the future and buys spot, negative does the reverse",
		},
		&cli.Float64Flag{
			Name:    "tolerance",
			Aliases: []string{"t"},
			Usage:   "the spread percentage to beat",
		},
		&cli.IntFlag{
			Name:  "attempts",
			Usage: "how many times the spread is checked",
		},
		&cli.DurationFlag{
			Name:  "wait",
			Usage: "the wait between checks",
		},
		&cli.DurationFlag{
			Name:  "maxwait",
			Usage: "when set the wait doubles after each check up to this value",
		},
	},
}

func runArb(c *cli.Context) error {
	client, cfg, err := setupClient(c)
	if err != nil {
		return err
	}
	s := cfg.Strategy
	if c.IsSet("coin") {
		s.Coin = c.String("coin")
	} else if c.Args().First() != "" {
		s.Coin = c.Args().First()
	}
	if s.Coin == "" {
		return errCoinRequired
	}
	if c.IsSet("direction") {
		s.Direction = c.String("direction")
	}
	if c.IsSet("tolerance") {
		s.Tolerance = c.Float64("tolerance")
	}
	if c.IsSet("attempts") {
		s.MaxAttempts = c.Int("attempts")
	}
	if c.IsSet("wait") {
		s.Wait = c.Duration("wait")
	}
	if c.IsSet("maxwait") {
		s.MaxWait = c.Duration("maxwait")
	}
	direction, err := basis.ParseDirection(s.Direction)
	if err != nil {
		return err
	}
	policy, err := basis.NewRetryPolicy(s.MaxAttempts, s.Wait, s.MaxWait)
	if err != nil {
		return err
	}
	loop, err := basis.New(client)
	if err != nil {
		return err
	}
	res, err := loop.Run(c.Context, &basis.Params{
		Coin:      strings.ToUpper(s.Coin),
		Direction: direction,
		Tolerance: s.Tolerance,
		Policy:    policy,
	})
	if err != nil {
		return err
	}
	status := aurora.Bold(aurora.Green(res.Status.String()))
	if res.Status != basis.Success {
		status = aurora.Bold(aurora.Red(res.Status.String()))
	}
	fmt.Printf("%s after %d attempts, last spread %s%%\n", status, res.Attempts, res.Spread.StringFixed(4))
	if len(res.Orders) > 0 {
		jsonOutput(res.Orders)
	}
	return res.Err
}

func coinArg(c *cli.Context) (string, error) {
	coin := c.String("coin")
	if !c.IsSet("coin") {
		coin = c.Args().First()
	}
	if coin == "" {
		return "", errCoinRequired
	}
	return strings.ToUpper(coin), nil
}

// parseTimeRange reads start and end from their flags, falling back to the
// positional arguments at startArg and endArg
func parseTimeRange(c *cli.Context, startArg, endArg int) (start, end time.Time, err error) {
	startTime, endTime := c.String("start"), c.String("end")
	if !c.IsSet("start") && c.Args().Get(startArg) != "" {
		startTime = c.Args().Get(startArg)
	}
	if !c.IsSet("end") && c.Args().Get(endArg) != "" {
		endTime = c.Args().Get(endArg)
	}
	start, err = time.Parse(timeFormat, startTime)
	if err != nil {
		return start, end, err
	}
	end, err = time.Parse(timeFormat, endTime)
	return start, end, err
}
