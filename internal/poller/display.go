package poller

// Region names a single text field of the display surface.
type Region string

const (
	RegionBalance          Region = "balance"
	RegionEquity           Region = "equity"
	RegionRealizedPL       Region = "realized-pl"
	RegionUnrealizedPL     Region = "unrealized-pl"
	RegionDailyPL          Region = "daily-pl"
	RegionMarketPrice      Region = "market-price"
	RegionPositionQuantity Region = "position-quantity"
	RegionPositionAvgPrice Region = "position-avg-price"
)

// AccountRegions are the account summary fields, in display order.
var AccountRegions = []Region{
	RegionBalance,
	RegionEquity,
	RegionRealizedPL,
	RegionUnrealizedPL,
	RegionDailyPL,
}

// PositionColumns are the headers of the positions table.
var PositionColumns = []string{"Symbol", "Quantity", "Avg Price", "Current Value", "Unrealized P/L"}

// Placeholders and user-facing messages.
const (
	PlaceholderError        = "Error"
	PlaceholderNotAvailable = "N/A"
	MessagePositionsError   = "Error loading positions"
	MessageEmptyQuantity    = "Please enter a quantity"
	MessageInvalidQuantity  = "Please enter a valid quantity"
)

// Display is the surface the poller renders into. Implementations must be safe for use
// from multiple goroutines.
type Display interface {
	// SetText replaces the text of one region.
	SetText(region Region, text string)
	// SetRows clears the positions table and fills it with rows.
	SetRows(rows [][]string)
	// SetTableMessage replaces the positions table body with a single message row.
	SetTableMessage(text string)
	// Quantity returns the current content of the trade quantity input.
	Quantity() string
	// Alert shows a notification the user has to acknowledge.
	Alert(text string)
	// RedirectToLogin sends the user to the login screen.
	RedirectToLogin()
}

// RegionLabels are human-readable names for each region.
var RegionLabels = map[Region]string{
	RegionBalance:          "Balance",
	RegionEquity:           "Equity",
	RegionRealizedPL:       "Realized P/L",
	RegionUnrealizedPL:     "Unrealized P/L",
	RegionDailyPL:          "Daily P/L",
	RegionMarketPrice:      "Market Price",
	RegionPositionQuantity: "Position",
	RegionPositionAvgPrice: "Avg Price",
}
