package ftx

import (
	"context"
	"fmt"
	"time"

	"github.com/basis-arb/ftxclient/log"
)

// tradesPageLimit is the number of trades the exchange returns in a full page
const tradesPageLimit = 100

// GetAllTrades walks the trade history of a market backwards from end to
// start, 100 trades at a time, and returns every trade once in retrieval
// order. A zero end starts from the latest trade. Any failure aborts the walk
// without partial results.
func (f *Ftx) GetAllTrades(ctx context.Context, marketName string, start, end time.Time) ([]TradeData, error) {
	return f.GetAllTradesWithLimit(ctx, marketName, start, end, 0)
}

// GetAllTradesWithLimit is GetAllTrades bounded to maxPages requests, zero is
// unbounded. ErrPageLimitReached is returned when the bound stops the walk
// while more trades remain.
func (f *Ftx) GetAllTradesWithLimit(ctx context.Context, marketName string, start, end time.Time, maxPages int) ([]TradeData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	if err := checkTimeRange(start, end); err != nil {
		return nil, err
	}
	if maxPages < 0 {
		return nil, fmt.Errorf("%w: max pages cannot be negative", ErrInvalidArgument)
	}

	seen := make(map[int64]struct{})
	var resp []TradeData
	cursor := end
	for page := 1; ; page++ {
		if maxPages > 0 && page > maxPages {
			return nil, fmt.Errorf("%w: %d pages of %s", ErrPageLimitReached, maxPages, marketName)
		}
		trades, err := f.getTradesPage(ctx, marketName, start, cursor)
		if err != nil {
			return nil, err
		}
		if len(trades) == 0 {
			break
		}
		earliest := trades[0].Time
		for i := range trades {
			if trades[i].Time.Before(earliest) {
				earliest = trades[i].Time
			}
			if _, ok := seen[trades[i].ID]; ok {
				continue
			}
			seen[trades[i].ID] = struct{}{}
			resp = append(resp, trades[i])
		}
		log.Debugf(log.ExchangeSys, "%s %s adding %d trades with end time %v", f.Name, marketName, len(trades), earliest)
		if len(trades) < tradesPageLimit {
			break
		}
		cursor = earliest
	}
	return resp, nil
}
