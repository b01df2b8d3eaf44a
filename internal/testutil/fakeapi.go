package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// Routes of the fake remote weather API, used with Fail and Calls.
const (
	RouteWeather = "weather"
	RouteList    = "list"
	RouteCreate  = "create"
	RouteDelete  = "delete"
	RouteSync    = "sync"
)

// BasePath is where the fake API mounts its routes.
const BasePath = "/api/cities"

// SyncTimestamp is the lastUpdated value written by a fake sync.
const SyncTimestamp = "2024-01-01T00:00:00Z"

// FakeCity is a favorite city in the remote API's wire format.
type FakeCity struct {
	ID            int64    `json:"id"`
	CityName      string   `json:"cityName"`
	MinTempAlert  *float64 `json:"minTempAlert"`
	MaxTempAlert  *float64 `json:"maxTempAlert"`
	LastKnownTemp float64  `json:"lastKnownTemp"`
	Alert         bool     `json:"alert"`
	LastUpdated   *string  `json:"lastUpdated"`
}

// FakeWeather is a current-conditions record.
type FakeWeather struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
}

// FakeAPI is an in-memory remote weather API served over httptest.
// It keeps cities in creation order and computes alerts on sync.
type FakeAPI struct {
	server *httptest.Server

	mu         sync.Mutex
	cities     []FakeCity
	weather    map[string]FakeWeather
	failures   map[string]int
	calls      map[string]int
	createBody []byte
	nextID     int64
}

// NewFakeAPI starts a fake API that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		weather:  make(map[string]FakeWeather),
		failures: make(map[string]int),
		calls:    make(map[string]int),
		nextID:   1,
	}

	router := mux.NewRouter().UseEncodedPath()
	api := router.PathPrefix(BasePath).Subrouter()
	api.HandleFunc("/weather/{city}", f.route(RouteWeather, f.getWeather)).Methods(http.MethodGet)
	api.HandleFunc("/favorites", f.route(RouteList, f.listFavorites)).Methods(http.MethodGet)
	api.HandleFunc("/favorites", f.route(RouteCreate, f.createFavorite)).Methods(http.MethodPost)
	api.HandleFunc("/favorites/{id:[0-9]+}", f.route(RouteDelete, f.deleteFavorite)).Methods(http.MethodDelete)
	api.HandleFunc("/sync", f.route(RouteSync, f.sync)).Methods(http.MethodPost)

	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the API base URL, including BasePath.
func (f *FakeAPI) URL() string {
	return f.server.URL + BasePath
}

// Seed adds cities as if they had been created, assigning ids when zero.
func (f *FakeAPI) Seed(cities ...FakeCity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range cities {
		if c.ID == 0 {
			c.ID = f.nextID
		}
		f.nextID = max(f.nextID, c.ID+1)
		f.cities = append(f.cities, c)
	}
}

// SetWeather sets the conditions returned for city and used by sync.
func (f *FakeAPI) SetWeather(city string, temperature float64, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weather[strings.ToLower(city)] = FakeWeather{City: city, Temperature: temperature, Description: description}
}

// Fail makes route answer with status until Fail is called again with 0.
func (f *FakeAPI) Fail(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if status == 0 {
		delete(f.failures, route)
		return
	}
	f.failures[route] = status
}

// Calls returns how many requests route has received.
func (f *FakeAPI) Calls(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// Cities returns a copy of the stored cities.
func (f *FakeAPI) Cities() []FakeCity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.cities)
}

// LastCreateBody returns the raw body of the most recent create request.
func (f *FakeAPI) LastCreateBody() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.createBody)
}

func (f *FakeAPI) route(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[name]++
		status, failing := f.failures[name]
		f.mu.Unlock()

		if failing {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		h(w, r)
	}
}

func (f *FakeAPI) getWeather(w http.ResponseWriter, r *http.Request) {
	city, err := url.PathUnescape(mux.Vars(r)["city"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad city"})
		return
	}

	f.mu.Lock()
	weather, ok := f.weather[strings.ToLower(city)]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "unknown city"})
		return
	}
	writeJSON(w, http.StatusOK, weather)
}

func (f *FakeAPI) listFavorites(w http.ResponseWriter, _ *http.Request) {
	cities := f.Cities()
	if cities == nil {
		cities = []FakeCity{}
	}
	writeJSON(w, http.StatusOK, cities)
}

func (f *FakeAPI) createFavorite(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	var req struct {
		CityName     string   `json:"cityName"`
		MinTempAlert *float64 `json:"minTempAlert"`
		MaxTempAlert *float64 `json:"maxTempAlert"`
	}
	if err := json.Unmarshal(body, &req); err != nil || strings.TrimSpace(req.CityName) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid city"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.createBody = body

	for _, c := range f.cities {
		if strings.EqualFold(c.CityName, req.CityName) {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "city already exists"})
			return
		}
	}

	city := FakeCity{
		ID:           f.nextID,
		CityName:     req.CityName,
		MinTempAlert: req.MinTempAlert,
		MaxTempAlert: req.MaxTempAlert,
	}
	if weather, ok := f.weather[strings.ToLower(req.CityName)]; ok {
		city.LastKnownTemp = weather.Temperature
		city.Alert = outOfRange(city)
	}
	f.nextID++
	f.cities = append(f.cities, city)
	writeJSON(w, http.StatusCreated, city)
}

func (f *FakeAPI) deleteFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad id"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	idx := slices.IndexFunc(f.cities, func(c FakeCity) bool { return c.ID == id })
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "city not found"})
		return
	}
	f.cities = slices.Delete(f.cities, idx, idx+1)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) sync(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ts := SyncTimestamp
	synced := 0
	for i := range f.cities {
		weather, ok := f.weather[strings.ToLower(f.cities[i].CityName)]
		if !ok {
			continue
		}
		f.cities[i].LastKnownTemp = weather.Temperature
		f.cities[i].Alert = outOfRange(f.cities[i])
		f.cities[i].LastUpdated = &ts
		synced++
	}
	writeJSON(w, http.StatusOK, map[string]any{"syncedCities": synced, "timestamp": ts})
}

func outOfRange(c FakeCity) bool {
	if c.MinTempAlert != nil && c.LastKnownTemp < *c.MinTempAlert {
		return true
	}
	return c.MaxTempAlert != nil && c.LastKnownTemp > *c.MaxTempAlert
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
