// Package dashboard holds the favorites list for one session and drives
// load, add, delete and sync against the remote weather API.
//
// The list is only ever replaced from API results; it is never edited in
// place. Each action moves through idle, in-flight and then success or
// error, and a failure is kept as a single dismissible message.
package dashboard

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/tphakala/weatherdash/internal/apiclient"
	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/form"
	"github.com/tphakala/weatherdash/internal/logger"
)

// API is the subset of the API client the controller drives.
type API interface {
	ListFavorites(ctx context.Context) ([]apiclient.FavoriteCity, error)
	AddFavorite(ctx context.Context, city string, minTemp, maxTemp *float64) (*apiclient.FavoriteCity, error)
	DeleteFavorite(ctx context.Context, id int64) error
	SyncAll(ctx context.Context) (*apiclient.SyncResult, error)
}

// Status is the lifecycle state of one action kind.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusInFlight Status = "in-flight"
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
)

// DeletePrompt is the question asked before deleting a city.
const DeletePrompt = "Are you sure you want to delete this city?"

// ErrActionInFlight is returned when an action is triggered while the
// same kind of action is still running.
var ErrActionInFlight = errors.NewStd("action already in progress")

// State is a point-in-time copy of the controller state.
type State struct {
	Favorites []apiclient.FavoriteCity
	Status    map[Action]Status
	Error     string
	LastSync  *apiclient.SyncResult
	UpdatedAt time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log.Module("dashboard")
		}
	}
}

// WithObserver registers fn to receive a snapshot after every completed action.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// Controller owns the in-memory favorites list.
type Controller struct {
	api       API
	confirm   Confirmer
	log       logger.Logger
	observers []func(State)

	mu        sync.Mutex
	favorites []apiclient.FavoriteCity
	status    map[Action]Status
	errMsg    string
	lastSync  *apiclient.SyncResult
	updatedAt time.Time
}

// New creates a controller. A nil confirmer declines every delete.
func New(api API, confirm Confirmer, opts ...Option) *Controller {
	if confirm == nil {
		confirm = NeverConfirm
	}
	c := &Controller{
		api:       api,
		confirm:   confirm,
		log:       logger.NewDiscardLogger(),
		favorites: []apiclient.FavoriteCity{},
		status: map[Action]Status{
			ActionLoad:   StatusIdle,
			ActionAdd:    StatusIdle,
			ActionDelete: StatusIdle,
			ActionSync:   StatusIdle,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the full list. On success the local list is replaced; on
// failure it is cleared and the error is surfaced.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.begin(ActionLoad); err != nil {
		return err
	}

	favorites, err := c.api.ListFavorites(ctx)
	c.finish(Result{Action: ActionLoad, Favorites: favorites, Err: err})
	return err
}

// Add validates the raw form values and creates the city. The new record
// is appended to the local list. Validation failures never reach the API
// and do not change action state.
func (c *Controller) Add(ctx context.Context, city, minTemp, maxTemp string) (*apiclient.FavoriteCity, error) {
	in, err := form.Validate(city, minTemp, maxTemp)
	if err != nil {
		c.log.Debug("add rejected by validation", logger.Error(err))
		return nil, err
	}

	if err := c.begin(ActionAdd); err != nil {
		return nil, err
	}

	added, err := c.api.AddFavorite(ctx, in.City, in.MinTemp, in.MaxTemp)
	c.finish(Result{Action: ActionAdd, Added: added, Err: err})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// Delete asks for confirmation and then removes the city with id.
// It reports false without calling the API when the user declines.
func (c *Controller) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := c.confirm.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		c.log.Debug("delete cancelled", logger.Int64("id", id))
		return false, nil
	}

	if err := c.begin(ActionDelete); err != nil {
		return false, err
	}

	err = c.api.DeleteFavorite(ctx, id)
	c.finish(Result{Action: ActionDelete, DeletedID: id, Err: err})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Sync asks the server to refresh every city and then reloads the list.
// The returned error is the sync failure, or the reload failure when the
// sync itself succeeded.
func (c *Controller) Sync(ctx context.Context) (*apiclient.SyncResult, error) {
	if err := c.begin(ActionSync); err != nil {
		return nil, err
	}

	res, err := c.api.SyncAll(ctx)
	c.finish(Result{Action: ActionSync, Err: err})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lastSync = res
	c.mu.Unlock()

	if err := c.Load(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// DismissError clears the surfaced error message.
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
}

// Favorites returns a copy of the current list.
func (c *Controller) Favorites() []apiclient.FavoriteCity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.favorites)
}

// Alerting returns the cities whose server-computed alert flag is set.
func (c *Controller) Alerting() []apiclient.FavoriteCity {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []apiclient.FavoriteCity
	for _, fc := range c.favorites {
		if fc.Alert {
			out = append(out, fc)
		}
	}
	return out
}

// Status returns the current status of action.
func (c *Controller) Status(action Action) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status[action]
}

// Error returns the surfaced error message, empty when there is none.
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Snapshot returns a copy of the full controller state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	return State{
		Favorites: slices.Clone(c.favorites),
		Status:    maps.Clone(c.status),
		Error:     c.errMsg,
		LastSync:  c.lastSync,
		UpdatedAt: c.updatedAt,
	}
}

// begin marks action in flight and clears the previous message.
func (c *Controller) begin(action Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status[action] == StatusInFlight {
		return ErrActionInFlight
	}
	c.status[action] = StatusInFlight
	c.errMsg = ""
	return nil
}

// finish applies r to the list, records the outcome and notifies observers.
func (c *Controller) finish(r Result) {
	c.mu.Lock()
	c.favorites = Reduce(c.favorites, r)
	c.updatedAt = time.Now()
	if r.Err != nil {
		c.status[r.Action] = StatusError
		c.errMsg = r.Err.Error()
	} else {
		c.status[r.Action] = StatusSuccess
	}
	state := c.snapshotLocked()
	c.mu.Unlock()

	if r.Err != nil {
		c.log.Warn("dashboard action failed", logger.String("action", string(r.Action)), logger.Error(r.Err))
	} else {
		c.log.Debug("dashboard action completed",
			logger.String("action", string(r.Action)),
			logger.Int("favorites", len(state.Favorites)))
	}

	for _, fn := range c.observers {
		fn(state)
	}
}
