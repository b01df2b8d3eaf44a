package apiclient

import (
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/weatherdash/internal/httpclient"
)

const testBaseURL = "http://weather.test/api/cities"

// newMockedClient returns a Client whose transport is an httpmock transport.
func newMockedClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	hc := httpclient.New(&httpclient.Config{Transport: transport})
	t.Cleanup(hc.Close)

	c, err := New(testBaseURL, hc, nil)
	require.NoError(t, err)
	return c, transport
}

// favoritesResponse is a list payload with one bounded and one unbounded city.
func favoritesResponse() string {
	return `[
  {"id": 1, "cityName": "Oslo", "minTempAlert": -5, "maxTempAlert": 25, "lastKnownTemp": 30, "alert": true, "lastUpdated": "2024-01-01T00:00:00Z"},
  {"id": 2, "cityName": "Lima", "minTempAlert": null, "maxTempAlert": null, "lastKnownTemp": 18.5, "alert": false, "lastUpdated": null}
]`
}

// jsonResponder responds with a JSON content type.
func jsonResponder(status int, body string) httpmock.Responder {
	return httpmock.NewStringResponder(status, body).HeaderSet(http.Header{"Content-Type": {"application/json"}})
}
