package ftx

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// annualisedFundingFactor scales an hourly funding rate into the figure
// reported by AverageFundingRate
var annualisedFundingFactor = decimal.NewFromInt(636000)

// DailyPayment is the funding received on one UTC calendar day
type DailyPayment struct {
	Day     time.Time
	Payment decimal.Decimal
}

// AverageFundingRate returns the mean of rate*636000 over the perpetual
// future of coin across the last days, rounded to two decimal places
func (f *Ftx) AverageFundingRate(ctx context.Context, coin string, days int) (decimal.Decimal, error) {
	if coin == "" {
		return decimal.Zero, errCoinEmpty
	}
	if days <= 0 {
		return decimal.Zero, errInvalidDays
	}
	end := f.now()
	start := end.Add(-time.Duration(days) * 24 * time.Hour)
	future := coin + "-PERP"
	rates, err := f.GetFundingRates(ctx, future, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	if len(rates) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoFundingData, future)
	}
	sum := decimal.Zero
	for i := range rates {
		sum = sum.Add(decimal.NewFromFloat(rates[i].Rate).Mul(annualisedFundingFactor))
	}
	return sum.Div(decimal.NewFromInt(int64(len(rates)))).Round(2), nil
}

// DailyFundingPayments groups funding payments by UTC day, oldest first. Each
// day holds the negated sum of its payments, which is what the account
// received.
func (f *Ftx) DailyFundingPayments(ctx context.Context, future string, start, end time.Time) ([]DailyPayment, error) {
	payments, err := f.GetFundingPayments(ctx, start, end, future)
	if err != nil {
		return nil, err
	}
	return aggregateDailyPayments(payments), nil
}

func aggregateDailyPayments(payments []FundingPaymentsData) []DailyPayment {
	days := make(map[time.Time]decimal.Decimal)
	for i := range payments {
		day := payments[i].Time.UTC().Truncate(24 * time.Hour)
		days[day] = days[day].Sub(decimal.NewFromFloat(payments[i].Payment))
	}
	resp := make([]DailyPayment, 0, len(days))
	for day, amount := range days {
		resp = append(resp, DailyPayment{Day: day, Payment: amount})
	}
	sort.Slice(resp, func(i, j int) bool {
		return resp[i].Day.Before(resp[j].Day)
	})
	return resp
}
