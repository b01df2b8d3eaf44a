package dashboard

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/weatherdash/internal/apiclient"
	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/form"
)

// stubAPI records calls and returns canned results.
type stubAPI struct {
	mu        sync.Mutex
	favorites []apiclient.FavoriteCity
	listErr   error
	addErr    error
	deleteErr error
	syncErr   error
	calls     map[string]int
	addArgs   []any
	block     chan struct{}
}

func newStubAPI(favorites ...apiclient.FavoriteCity) *stubAPI {
	return &stubAPI{favorites: favorites, calls: make(map[string]int)}
}

func (s *stubAPI) record(name string) {
	s.mu.Lock()
	s.calls[name]++
	s.mu.Unlock()
}

func (s *stubAPI) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubAPI) ListFavorites(context.Context) ([]apiclient.FavoriteCity, error) {
	s.record("list")
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]apiclient.FavoriteCity(nil), s.favorites...), nil
}

func (s *stubAPI) AddFavorite(_ context.Context, name string, minTemp, maxTemp *float64) (*apiclient.FavoriteCity, error) {
	s.record("add")
	if s.block != nil {
		<-s.block
	}
	s.addArgs = []any{name, minTemp, maxTemp}
	if s.addErr != nil {
		return nil, s.addErr
	}
	fc := apiclient.FavoriteCity{ID: int64(len(s.favorites) + 100), City: name, MinTemp: minTemp, MaxTemp: maxTemp}
	s.favorites = append(s.favorites, fc)
	return &fc, nil
}

func (s *stubAPI) DeleteFavorite(_ context.Context, id int64) error {
	s.record("delete")
	return s.deleteErr
}

func (s *stubAPI) SyncAll(context.Context) (*apiclient.SyncResult, error) {
	s.record("sync")
	if s.syncErr != nil {
		return nil, s.syncErr
	}
	for i := range s.favorites {
		s.favorites[i].Temperature += 1
	}
	return &apiclient.SyncResult{SyncedCount: len(s.favorites), Timestamp: "2024-01-01T00:00:00Z"}, nil
}

func osloRecord() apiclient.FavoriteCity {
	return apiclient.FavoriteCity{
		ID: 1, City: "Oslo", Temperature: 30, Alert: true,
		MinTemp: apiclient.Float(-5), MaxTemp: apiclient.Float(25),
		LastUpdated: "2024-01-01T00:00:00Z",
	}
}

func TestLoad_ReplacesList(t *testing.T) {
	api := newStubAPI(osloRecord())
	c := New(api, nil)

	require.NoError(t, c.Load(t.Context()))

	assert.Equal(t, []apiclient.FavoriteCity{osloRecord()}, c.Favorites())
	assert.Equal(t, StatusSuccess, c.Status(ActionLoad))
	assert.Empty(t, c.Error())
}

func TestLoad_FailureClearsListAndSurfacesError(t *testing.T) {
	api := newStubAPI(osloRecord())
	c := New(api, nil)
	require.NoError(t, c.Load(t.Context()))
	require.Len(t, c.Favorites(), 1)

	api.listErr = errors.NewStd("failed to fetch favorite cities")
	err := c.Load(t.Context())

	require.Error(t, err)
	assert.Empty(t, c.Favorites())
	assert.Equal(t, "failed to fetch favorite cities", c.Error())
	assert.Equal(t, StatusError, c.Status(ActionLoad))
}

func TestAdd_AppendsReturnedRecord(t *testing.T) {
	api := newStubAPI(osloRecord())
	c := New(api, nil)
	require.NoError(t, c.Load(t.Context()))

	added, err := c.Add(t.Context(), "  Paris ", "", "")
	require.NoError(t, err)

	assert.Equal(t, "Paris", added.City)
	favorites := c.Favorites()
	require.Len(t, favorites, 2)
	assert.Equal(t, "Oslo", favorites[0].City)
	assert.Equal(t, "Paris", favorites[1].City, "appended, not re-sorted")
	assert.Equal(t, []any{"Paris", (*float64)(nil), (*float64)(nil)}, api.addArgs)
	assert.Equal(t, StatusSuccess, c.Status(ActionAdd))
}

func TestAdd_ValidationNeverReachesAPI(t *testing.T) {
	tests := []struct {
		name    string
		city    string
		minTemp string
		maxTemp string
		want    error
	}{
		{"empty name", "   ", "", "", form.ErrRequiredField},
		{"range order", "Oslo", "30", "10", form.ErrRangeOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newStubAPI()
			c := New(api, nil)

			_, err := c.Add(t.Context(), tt.city, tt.minTemp, tt.maxTemp)
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, api.count("add"))
			assert.Equal(t, StatusIdle, c.Status(ActionAdd))
		})
	}
}

func TestAdd_FailureLeavesListUnchanged(t *testing.T) {
	api := newStubAPI(osloRecord())
	c := New(api, nil)
	require.NoError(t, c.Load(t.Context()))

	api.addErr = errors.NewStd("failed to add favorite city")
	added, err := c.Add(t.Context(), "Oslo", "", "")

	require.Error(t, err)
	assert.Nil(t, added)
	assert.Len(t, c.Favorites(), 1)
	assert.Equal(t, "failed to add favorite city", c.Error())
	assert.Equal(t, StatusError, c.Status(ActionAdd))
}

func TestDelete_WithoutConfirmationDoesNothing(t *testing.T) {
	api := newStubAPI(osloRecord())
	c := New(api, NeverConfirm)
	require.NoError(t, c.Load(t.Context()))

	deleted, err := c.Delete(t.Context(), 1)

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Zero(t, api.count("delete"), "no API call without confirmation")
	assert.Len(t, c.Favorites(), 1)
	assert.Equal(t, StatusIdle, c.Status(ActionDelete))
}

func TestDelete_ConfirmedRemovesByID(t *testing.T) {
	second := osloRecord()
	second.ID, second.City = 2, "Lima"
	api := newStubAPI(osloRecord(), second)

	var prompts []string
	confirm := ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		prompts = append(prompts, prompt)
		return true, nil
	})
	c := New(api, confirm)
	require.NoError(t, c.Load(t.Context()))

	deleted, err := c.Delete(t.Context(), 1)

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{DeletePrompt}, prompts)
	favorites := c.Favorites()
	require.Len(t, favorites, 1)
	assert.Equal(t, int64(2), favorites[0].ID)
}

func TestDelete_FailureLeavesListUnchanged(t *testing.T) {
	api := newStubAPI(osloRecord())
	api.deleteErr = errors.NewStd("failed to delete favorite city")
	c := New(api, AlwaysConfirm)
	require.NoError(t, c.Load(t.Context()))

	deleted, err := c.Delete(t.Context(), 1)

	require.Error(t, err)
	assert.False(t, deleted)
	assert.Len(t, c.Favorites(), 1)
	assert.Equal(t, "failed to delete favorite city", c.Error())
}

func TestDelete_ConfirmerError(t *testing.T) {
	api := newStubAPI(osloRecord())
	c := New(api, ConfirmFunc(func(context.Context, string) (bool, error) {
		return false, context.Canceled
	}))

	_, err := c.Delete(t.Context(), 1)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, api.count("delete"))
}

func TestSync_ReloadsAfterSync(t *testing.T) {
	api := newStubAPI(osloRecord())
	c := New(api, nil)
	require.NoError(t, c.Load(t.Context()))

	res, err := c.Sync(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 1, res.SyncedCount)
	assert.Equal(t, 2, api.count("list"), "sync must reload")
	assert.InDelta(t, 31.0, c.Favorites()[0].Temperature, 0)
	assert.Equal(t, StatusSuccess, c.Status(ActionSync))
	assert.Equal(t, res, c.Snapshot().LastSync)
}

func TestSync_FailureSkipsReload(t *testing.T) {
	api := newStubAPI(osloRecord())
	c := New(api, nil)
	require.NoError(t, c.Load(t.Context()))

	api.syncErr = errors.NewStd("failed to sync weather")
	_, err := c.Sync(t.Context())

	require.Error(t, err)
	assert.Equal(t, 1, api.count("list"))
	assert.Len(t, c.Favorites(), 1, "list unchanged on sync failure")
	assert.Equal(t, "failed to sync weather", c.Error())
	assert.Equal(t, StatusError, c.Status(ActionSync))
}

func TestSync_ReloadFailure(t *testing.T) {
	api := newStubAPI(osloRecord())
	c := New(api, nil)
	require.NoError(t, c.Load(t.Context()))

	api.listErr = errors.NewStd("failed to fetch favorite cities")
	res, err := c.Sync(t.Context())

	require.Error(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, StatusSuccess, c.Status(ActionSync))
	assert.Equal(t, StatusError, c.Status(ActionLoad))
	assert.Empty(t, c.Favorites())
}

func TestDismissErrorAndActionStartClearMessage(t *testing.T) {
	api := newStubAPI()
	api.listErr = errors.NewStd("failed to fetch favorite cities")
	c := New(api, nil)

	require.Error(t, c.Load(t.Context()))
	require.NotEmpty(t, c.Error())

	c.DismissError()
	assert.Empty(t, c.Error())

	require.Error(t, c.Load(t.Context()))
	api.listErr = nil
	require.NoError(t, c.Load(t.Context()))
	assert.Empty(t, c.Error(), "a new action clears the previous message")
}

func TestActionInFlightRejected(t *testing.T) {
	api := newStubAPI()
	api.block = make(chan struct{})
	c := New(api, nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.Add(context.Background(), "Oslo", "", "")
		done <- err
	}()

	require.Eventually(t, func() bool { return c.Status(ActionAdd) == StatusInFlight }, testTimeout, tick)

	_, err := c.Add(t.Context(), "Lima", "", "")
	require.ErrorIs(t, err, ErrActionInFlight)

	close(api.block)
	require.NoError(t, <-done)
	assert.Equal(t, StatusSuccess, c.Status(ActionAdd))
}

func TestObserverReceivesSnapshots(t *testing.T) {
	api := newStubAPI(osloRecord())
	var states []State
	c := New(api, nil, WithObserver(func(s State) { states = append(states, s) }))

	require.NoError(t, c.Load(t.Context()))

	require.Len(t, states, 1)
	assert.Len(t, states[0].Favorites, 1)
	assert.Equal(t, StatusSuccess, states[0].Status[ActionLoad])
	assert.False(t, states[0].UpdatedAt.IsZero())
}

func TestAlerting(t *testing.T) {
	calm := osloRecord()
	calm.ID, calm.City, calm.Alert = 2, "Lima", false
	c := New(newStubAPI(osloRecord(), calm), nil)
	require.NoError(t, c.Load(t.Context()))

	alerting := c.Alerting()
	require.Len(t, alerting, 1)
	assert.Equal(t, "Oslo", alerting[0].City)
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := &PromptConfirmer{In: strings.NewReader(tt.input), Out: &out}

			ok, err := p.Confirm(t.Context(), DeletePrompt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, DeletePrompt+" [y/N]: ", out.String())
		})
	}
}
