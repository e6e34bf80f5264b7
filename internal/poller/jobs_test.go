package poller

import (
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradeboard/internal/api"
	"github.com/aristath/tradeboard/internal/scheduler"
)

func TestSchedule_PollsIndependently(t *testing.T) {
	p, server, display := newTestPoller(t)
	server.set(api.PathAccountSummary, http.StatusInternalServerError, `{}`)
	server.set(api.PathPositions, http.StatusOK, onePosition)
	server.set(api.PathMarketData, http.StatusOK, `{"Last": 19870}`)

	s := scheduler.New(zerolog.Nop())
	require.NoError(t, p.Schedule(s, Intervals{
		AccountSummary: time.Hour,
		Positions:      time.Hour,
		MarketData:     time.Second,
	}))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return display.text(RegionBalance) == PlaceholderError &&
			display.text(RegionPositionQuantity) == "2" &&
			display.text(RegionMarketPrice) == "19870.00"
	}, 2*time.Second, 20*time.Millisecond)

	assert.Eventually(t, func() bool {
		return server.count(api.PathMarketData) >= 2
	}, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, 1, server.count(api.PathAccountSummary))

	require.NoError(t, s.RunNow(JobAccountSummary))
	assert.Eventually(t, func() bool {
		return server.count(api.PathAccountSummary) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestSchedule_DuplicateRegistrationFails(t *testing.T) {
	p, _, _ := newTestPoller(t)
	s := scheduler.New(zerolog.Nop())

	require.NoError(t, p.Schedule(s, DefaultIntervals))
	assert.Error(t, p.Schedule(s, DefaultIntervals))
}
