package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/weatherdash/internal/apiclient"
	"github.com/tphakala/weatherdash/internal/httpclient"
	"github.com/tphakala/weatherdash/internal/testutil"
)

func newFakeBackedController(t *testing.T, confirm Confirmer) (*Controller, *testutil.FakeAPI) {
	t.Helper()
	fake := testutil.NewFakeAPI(t)
	hc := httpclient.New(nil)
	t.Cleanup(hc.Close)

	client, err := apiclient.New(fake.URL(), hc, nil)
	require.NoError(t, err)
	return New(client, confirm), fake
}

func TestControllerAgainstFakeAPI(t *testing.T) {
	c, fake := newFakeBackedController(t, AlwaysConfirm)
	fake.SetWeather("Oslo", 30, "clear sky")
	fake.SetWeather("Lima", 18, "overcast clouds")

	require.NoError(t, c.Load(t.Context()))
	assert.Empty(t, c.Favorites())

	oslo, err := c.Add(t.Context(), "Oslo", "-5", "25")
	require.NoError(t, err)
	assert.True(t, oslo.Alert)
	assert.JSONEq(t, `{"cityName":"Oslo","minTempAlert":-5,"maxTempAlert":25}`, string(fake.LastCreateBody()))

	_, err = c.Add(t.Context(), "Lima", "", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"cityName":"Lima"}`, string(fake.LastCreateBody()))

	res, err := c.Sync(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, res.SyncedCount)

	favorites := c.Favorites()
	require.Len(t, favorites, 2)
	assert.Equal(t, testutil.SyncTimestamp, favorites[0].LastUpdated)
	assert.Nil(t, favorites[1].MinTemp)

	deleted, err := c.Delete(t.Context(), oslo.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	require.Len(t, c.Favorites(), 1)
	assert.Equal(t, "Lima", c.Favorites()[0].City)

	// Deleting again surfaces the delete error and keeps the list
	deleted, err = c.Delete(t.Context(), oslo.ID)
	require.ErrorIs(t, err, apiclient.ErrDelete)
	assert.False(t, deleted)
	assert.Len(t, c.Favorites(), 1)
}

func TestControllerLoadFailureAgainstFakeAPI(t *testing.T) {
	c, fake := newFakeBackedController(t, nil)
	fake.Seed(testutil.FakeCity{CityName: "Oslo", LastKnownTemp: 10})
	require.NoError(t, c.Load(t.Context()))
	require.Len(t, c.Favorites(), 1)

	fake.Fail(testutil.RouteList, 503)
	require.ErrorIs(t, c.Load(t.Context()), apiclient.ErrFetch)
	assert.Empty(t, c.Favorites())
	assert.Equal(t, "failed to fetch favorite cities", c.Error())
}
