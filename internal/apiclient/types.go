package apiclient

// Weather is a point-in-time reading for one city.
type Weather struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
}

// FavoriteCity is the display shape of a tracked city.
//
// MinTemp and MaxTemp are nil when no bound is configured; a configured
// bound of 0 is a non-nil pointer to 0. Alert is computed by the server.
type FavoriteCity struct {
	ID          int64    `json:"id"`
	City        string   `json:"city"`
	Temperature float64  `json:"temperature"`
	Alert       bool     `json:"alert"`
	MinTemp     *float64 `json:"minTemp,omitempty"`
	MaxTemp     *float64 `json:"maxTemp,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
}

// SyncResult reports a server-side refresh of all tracked cities.
type SyncResult struct {
	SyncedCount int
	Timestamp   string
}

// Float returns a pointer to v, for building optional bounds.
func Float(v float64) *float64 {
	return &v
}
