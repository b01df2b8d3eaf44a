package dashboard

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tphakala/weatherdash/internal/apiclient"
	"github.com/tphakala/weatherdash/internal/logger"
)

// DefaultDescription is shown on a card when no live condition is known.
const DefaultDescription = "Clear"

// MaxConcurrency caps parallel weather lookups.
const MaxConcurrency = 16

// WeatherGetter fetches live conditions for one city.
type WeatherGetter interface {
	GetWeather(ctx context.Context, city string) (*apiclient.Weather, error)
}

// FetchConditions looks up the current description for every city, at
// most limit at a time. A failed lookup is logged and the city gets
// DefaultDescription; only cancellation of ctx is returned as an error.
func FetchConditions(ctx context.Context, getter WeatherGetter, cities []apiclient.FavoriteCity, limit int, log logger.Logger) (map[int64]string, error) {
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	limit = max(1, min(limit, MaxConcurrency))

	var mu sync.Mutex
	out := make(map[int64]string, len(cities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, fc := range cities {
		g.Go(func() error {
			desc := DefaultDescription
			w, err := getter.GetWeather(gctx, fc.City)
			switch {
			case err != nil:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Debug("conditions unavailable", logger.String("city", fc.City), logger.Error(err))
			case w.Description != "":
				desc = w.Description
			}

			mu.Lock()
			out[fc.ID] = desc
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
