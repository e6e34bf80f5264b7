package poller

import (
	"context"
	"time"

	"github.com/aristath/tradeboard/internal/api"
	"github.com/aristath/tradeboard/internal/scheduler"
)

// Job names, usable with scheduler.RunNow.
const (
	JobAccountSummary = "account_summary"
	JobPositions      = "positions"
	JobMarketData     = "market_data"
)

// Intervals configures how often each endpoint is polled.
type Intervals struct {
	AccountSummary time.Duration
	Positions      time.Duration
	MarketData     time.Duration
}

// DefaultIntervals matches the dashboard's refresh rates.
var DefaultIntervals = Intervals{
	AccountSummary: 5 * time.Second,
	Positions:      5 * time.Second,
	MarketData:     time.Second,
}

// Schedule registers the three polls with s. The polls are independent: a failing
// endpoint never delays the others.
func (p *Poller) Schedule(s *scheduler.Scheduler, iv Intervals) error {
	jobs := []struct {
		name     string
		interval time.Duration
		fetch    func(context.Context) error
	}{
		{JobAccountSummary, iv.AccountSummary, p.FetchAccountSummary},
		{JobPositions, iv.Positions, p.FetchPositions},
		{JobMarketData, iv.MarketData, p.FetchMarketData},
	}

	for _, j := range jobs {
		fetch := j.fetch
		job := scheduler.JobFunc{
			JobName: j.name,
			// Errors are logged and rendered by the poller itself.
			Fn: func(ctx context.Context) error {
				_ = fetch(ctx)
				return nil
			},
		}
		if err := s.AddJob(j.interval, job); err != nil {
			return err
		}
	}
	return nil
}

// FetchAll runs one poll cycle of every endpoint sequentially and returns the first error.
// It stops early once the session turns out to be invalid.
func (p *Poller) FetchAll(ctx context.Context) error {
	var first error
	for _, fetch := range []func(context.Context) error{
		p.FetchAccountSummary,
		p.FetchPositions,
		p.FetchMarketData,
	} {
		err := fetch(ctx)
		if api.IsUnauthorized(err) {
			return err
		}
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}
