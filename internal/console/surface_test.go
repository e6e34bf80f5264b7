package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/tradeboard/internal/poller"
)

func TestRender_SummaryAndTable(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.SetText(poller.RegionBalance, "$100000.00")
	s.SetText(poller.RegionMarketPrice, "19876.50")
	s.SetRows([][]string{{"NQ 09-24", "2", "$19850.25", "$39753.00", "$52.50"}})
	s.Render()

	out := buf.String()
	assert.Contains(t, out, "Balance:")
	assert.Contains(t, out, "$100000.00")
	assert.Contains(t, out, "Market Price:")
	assert.Contains(t, out, "NQ 09-24")
	assert.Contains(t, out, "$19850.25")
	assert.NotContains(t, out, "Equity:", "unset regions are skipped")
}

func TestRender_TableMessageReplacesRows(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.SetRows([][]string{{"NQ 09-24", "2", "$1.00", "$2.00", "$3.00"}})
	s.SetTableMessage(poller.MessagePositionsError)
	s.Render()

	assert.Contains(t, buf.String(), poller.MessagePositionsError)
	assert.NotContains(t, buf.String(), "NQ 09-24")
}

func TestAlertAndRedirect(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.Alert("Please enter a quantity")
	s.RedirectToLogin()
	s.RedirectToLogin()

	assert.True(t, s.Redirected())
	assert.Contains(t, buf.String(), "! Please enter a quantity")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Not authenticated")))
}

func TestQuantity(t *testing.T) {
	s := New(&bytes.Buffer{})
	assert.Empty(t, s.Quantity())

	s.SetQuantity("5")
	assert.Equal(t, "5", s.Quantity())
}
