// Package apiclient is the only boundary between weatherdash and the
// remote weather API. It translates between the API's wire records and
// the display shape used by the dashboard, and collapses every failure
// into one error per operation kind.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/httpclient"
	"github.com/tphakala/weatherdash/internal/logger"
)

const (
	componentName = "apiclient"

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 1 << 20

	// maxErrorBodySize bounds the body read for debug summaries.
	maxErrorBodySize = 8 << 10
)

// Operation names used in logs, metrics and error context.
const (
	OpGetWeather     = "get_weather"
	OpListFavorites  = "list_favorites"
	OpAddFavorite    = "add_favorite"
	OpDeleteFavorite = "delete_favorite"
	OpSyncAll        = "sync_all"
)

// Client talks to the remote weather API.
type Client struct {
	baseURL string
	http    *httpclient.Client
	log     logger.Logger
}

// New creates a Client for baseURL, for example http://localhost:9091/api/cities.
// A nil httpClient gets a default one; a nil log discards output.
func New(baseURL string, httpClient *httpclient.Client, log logger.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("invalid API base URL %q", baseURL).
			Component(componentName).
			Category(errors.CategoryConfiguration).
			Build()
	}
	if httpClient == nil {
		httpClient = httpclient.New(nil)
	}
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log.Module(componentName),
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetWeather fetches current conditions for city.
func (c *Client) GetWeather(ctx context.Context, city string) (*Weather, error) {
	msg := fmt.Sprintf("failed to fetch weather for %s", city)
	if strings.TrimSpace(city) == "" {
		return nil, c.fail(ctx, OpGetWeather, ErrFetch, errors.CategoryFetch, msg, 0, fmt.Errorf("empty city name"))
	}

	var w Weather
	if err := c.call(ctx, OpGetWeather, http.MethodGet, "/weather/"+url.PathEscape(city), nil, &w, ErrFetch, errors.CategoryFetch, msg); err != nil {
		return nil, err
	}
	return &w, nil
}

// ListFavorites returns every tracked city in server order. There are no
// partial results: any failure returns ErrFetch and a nil slice.
func (c *Client) ListFavorites(ctx context.Context) ([]FavoriteCity, error) {
	var records []favoriteRecord
	if err := c.call(ctx, OpListFavorites, http.MethodGet, "/favorites", nil, &records, ErrFetch, errors.CategoryFetch, "failed to fetch favorite cities"); err != nil {
		return nil, err
	}

	favorites := make([]FavoriteCity, 0, len(records))
	for i := range records {
		favorites = append(favorites, records[i].toFavorite())
	}
	c.log.WithContext(ctx).Debug("favorites loaded", logger.Int("count", len(favorites)))
	return favorites, nil
}

// AddFavorite creates a tracked city. Nil bounds are left out of the request.
func (c *Client) AddFavorite(ctx context.Context, city string, minTemp, maxTemp *float64) (*FavoriteCity, error) {
	req := NewCreateFavoriteRequest(city).WithMinTemp(minTemp).WithMaxTemp(maxTemp)

	var record favoriteRecord
	if err := c.call(ctx, OpAddFavorite, http.MethodPost, "/favorites", req, &record, ErrCreate, errors.CategoryCreate, "failed to add favorite city"); err != nil {
		return nil, err
	}

	fc := record.toFavorite()
	c.log.WithContext(ctx).Info("favorite city added", logger.Int64("id", fc.ID), logger.String("city", fc.City))
	return &fc, nil
}

// DeleteFavorite removes a tracked city. Deleting an unknown id is an error.
func (c *Client) DeleteFavorite(ctx context.Context, id int64) error {
	path := "/favorites/" + strconv.FormatInt(id, 10)
	if err := c.call(ctx, OpDeleteFavorite, http.MethodDelete, path, nil, nil, ErrDelete, errors.CategoryDelete, "failed to delete favorite city"); err != nil {
		return err
	}
	c.log.WithContext(ctx).Info("favorite city deleted", logger.Int64("id", id))
	return nil
}

// SyncAll asks the server to refresh every tracked city. It does not return
// the refreshed records; callers list again afterwards.
func (c *Client) SyncAll(ctx context.Context) (*SyncResult, error) {
	var resp syncResponse
	if err := c.call(ctx, OpSyncAll, http.MethodPost, "/sync", nil, &resp, ErrSync, errors.CategorySync, "failed to sync weather"); err != nil {
		return nil, err
	}
	c.log.WithContext(ctx).Info("weather synced", logger.Int("synced_cities", resp.SyncedCities))
	return &SyncResult{SyncedCount: resp.SyncedCities, Timestamp: resp.Timestamp}, nil
}

// call performs one request and decodes a 2xx body into out (skipped when out is nil).
func (c *Client) call(ctx context.Context, op, method, path string, body, out any, kind error, category errors.ErrorCategory, msg string) error {
	endpoint := c.baseURL + path
	start := time.Now()
	ctx = httpclient.WithOperation(ctx, op)

	var (
		resp *http.Response
		err  error
	)
	switch method {
	case http.MethodGet:
		resp, err = c.http.Get(ctx, endpoint)
	case http.MethodPost:
		resp, err = c.http.PostJSON(ctx, endpoint, body)
	case http.MethodDelete:
		resp, err = c.http.Delete(ctx, endpoint)
	default:
		err = fmt.Errorf("unsupported method %s", method)
	}
	if err != nil {
		return c.fail(ctx, op, kind, category, msg, 0, err)
	}
	defer func() {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		cause := fmt.Errorf("unexpected status %d", resp.StatusCode)
		if summary := summarizeBody(resp.Header.Get("Content-Type"), raw); summary != "" {
			cause = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, summary)
		}
		return c.fail(ctx, op, kind, category, msg, resp.StatusCode, cause)
	}

	if out != nil {
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
			return c.fail(ctx, op, kind, category, msg, resp.StatusCode, fmt.Errorf("decode response: %w", err))
		}
	}

	c.log.WithContext(ctx).Debug("API call completed",
		logger.String("operation", op),
		logger.Int("status_code", resp.StatusCode),
		logger.Duration("duration", time.Since(start)))
	return nil
}

// fail logs the real cause and returns the undifferentiated operation error.
// statusCode is 0 when no response was received.
func (c *Client) fail(ctx context.Context, op string, kind error, category errors.ErrorCategory, msg string, statusCode int, cause error) error {
	c.log.WithContext(ctx).Warn(msg,
		logger.String("operation", op),
		logger.Int("status_code", statusCode),
		logger.Error(cause))

	return errors.New(&operationError{msg: msg, kind: kind}).
		Component(componentName).
		Category(category).
		Context("operation", op).
		Context("status_code", statusCode).
		Build()
}
