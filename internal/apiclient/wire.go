package apiclient

// favoriteRecord is the favorite city as the remote API sends it.
// Bounds and lastUpdated are nullable on the wire.
type favoriteRecord struct {
	ID            int64    `json:"id"`
	CityName      string   `json:"cityName"`
	MinTempAlert  *float64 `json:"minTempAlert"`
	MaxTempAlert  *float64 `json:"maxTempAlert"`
	LastKnownTemp float64  `json:"lastKnownTemp"`
	Alert         bool     `json:"alert"`
	LastUpdated   *string  `json:"lastUpdated"`
}

// toFavorite maps a wire record to the display shape. A null bound stays
// absent, it never becomes zero.
func (r *favoriteRecord) toFavorite() FavoriteCity {
	fc := FavoriteCity{
		ID:          r.ID,
		City:        r.CityName,
		Temperature: r.LastKnownTemp,
		Alert:       r.Alert,
	}
	if r.MinTempAlert != nil {
		fc.MinTemp = Float(*r.MinTempAlert)
	}
	if r.MaxTempAlert != nil {
		fc.MaxTemp = Float(*r.MaxTempAlert)
	}
	if r.LastUpdated != nil {
		fc.LastUpdated = *r.LastUpdated
	}
	return fc
}

// CreateFavoriteRequest is the body of POST /favorites. Unset bounds are
// omitted from the JSON entirely rather than sent as null.
type CreateFavoriteRequest struct {
	CityName     string   `json:"cityName"`
	MinTempAlert *float64 `json:"minTempAlert,omitempty"`
	MaxTempAlert *float64 `json:"maxTempAlert,omitempty"`
}

// NewCreateFavoriteRequest starts a request for city with no bounds.
func NewCreateFavoriteRequest(city string) *CreateFavoriteRequest {
	return &CreateFavoriteRequest{CityName: city}
}

// WithMinTemp sets the lower alert bound when min is non-nil.
func (r *CreateFavoriteRequest) WithMinTemp(minTemp *float64) *CreateFavoriteRequest {
	if minTemp != nil {
		r.MinTempAlert = Float(*minTemp)
	}
	return r
}

// WithMaxTemp sets the upper alert bound when max is non-nil.
func (r *CreateFavoriteRequest) WithMaxTemp(maxTemp *float64) *CreateFavoriteRequest {
	if maxTemp != nil {
		r.MaxTempAlert = Float(*maxTemp)
	}
	return r
}

type syncResponse struct {
	SyncedCities int    `json:"syncedCities"`
	Timestamp    string `json:"timestamp"`
}
