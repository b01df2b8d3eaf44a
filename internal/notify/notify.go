// Package notify delivers temperature alerts for favorite cities to external
// sinks: shoutrrr notification services, an MQTT broker and Kafka.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tphakala/weatherdash/internal/apiclient"
	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/logger"
)

const componentName = "notify"

// Alert is one favorite city whose temperature is outside its bounds.
type Alert struct {
	CityID      int64    `json:"id"`
	City        string   `json:"city"`
	Temperature float64  `json:"temperature"`
	MinTemp     *float64 `json:"min_temp"`
	MaxTemp     *float64 `json:"max_temp"`
	LastUpdated string   `json:"last_updated"`
}

// Alerts returns an Alert for every city the server flagged as alerting,
// in list order.
func Alerts(favorites []apiclient.FavoriteCity) []Alert {
	var alerts []Alert
	for i := range favorites {
		fc := &favorites[i]
		if !fc.Alert {
			continue
		}
		alerts = append(alerts, Alert{
			CityID:      fc.ID,
			City:        fc.City,
			Temperature: fc.Temperature,
			MinTemp:     fc.MinTemp,
			MaxTemp:     fc.MaxTemp,
			LastUpdated: fc.LastUpdated,
		})
	}
	return alerts
}

// Title returns a short notification title.
func (a Alert) Title() string {
	return "Temperature alert: " + a.City
}

// Message describes which bound was crossed.
func (a Alert) Message() string {
	temp := strconv.FormatFloat(a.Temperature, 'f', 1, 64) + "°C"
	switch {
	case a.MaxTemp != nil && a.Temperature > *a.MaxTemp:
		return fmt.Sprintf("%s is %s, above the maximum of %s°C", a.City, temp, formatBound(*a.MaxTemp))
	case a.MinTemp != nil && a.Temperature < *a.MinTemp:
		return fmt.Sprintf("%s is %s, below the minimum of %s°C", a.City, temp, formatBound(*a.MinTemp))
	default:
		return fmt.Sprintf("%s is %s and outside its configured range", a.City, temp)
	}
}

// payload is the JSON document published to MQTT and Kafka.
type payload struct {
	Alert
	Message string `json:"message"`
}

// JSON encodes the alert with its message for machine consumers.
func (a Alert) JSON() ([]byte, error) {
	return json.Marshal(payload{Alert: a, Message: a.Message()})
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Sink delivers alerts to one destination.
type Sink interface {
	Name() string
	Send(ctx context.Context, alert Alert) error
	Close() error
}

// Recorder receives the outcome of every delivery attempt.
type Recorder interface {
	RecordDelivery(sink string, err error, elapsed time.Duration)
}

// Dispatcher sends alerts to every configured sink.
type Dispatcher struct {
	sinks    []Sink
	log      logger.Logger
	recorder Recorder
}

// NewDispatcher creates a Dispatcher. log and recorder may be nil.
func NewDispatcher(log logger.Logger, recorder Recorder, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	return &Dispatcher{
		sinks:    sinks,
		log:      log.Module(componentName),
		recorder: recorder,
	}
}

// Len returns the number of sinks.
func (d *Dispatcher) Len() int {
	return len(d.sinks)
}

// SinkNames returns the sink names in dispatch order.
func (d *Dispatcher) SinkNames() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Dispatch sends each alert to each sink. A failing sink does not stop
// delivery to the others; all failures are joined into the returned error.
func (d *Dispatcher) Dispatch(ctx context.Context, alerts []Alert) error {
	log := d.log.WithContext(ctx)
	var errs []error

	for _, alert := range alerts {
		for _, sink := range d.sinks {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}

			start := time.Now()
			err := sink.Send(ctx, alert)
			if d.recorder != nil {
				d.recorder.RecordDelivery(sink.Name(), err, time.Since(start))
			}

			if err != nil {
				log.Warn("alert delivery failed",
					logger.String("sink", sink.Name()),
					logger.String("city", alert.City),
					logger.Error(err))
				errs = append(errs, deliveryError(sink.Name(), alert, err))
				continue
			}
			log.Info("alert delivered",
				logger.String("sink", sink.Name()),
				logger.String("city", alert.City),
				logger.Duration("duration", time.Since(start)))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink.
func (d *Dispatcher) Close() error {
	var errs []error
	for _, sink := range d.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func deliveryError(sink string, alert Alert, err error) error {
	return errors.New(fmt.Errorf("%s: %s", sink, errors.ScrubMessage(err.Error()))).
		Component(componentName).
		Category(errors.CategoryIntegration).
		Context("sink", sink).
		Context("city_id", alert.CityID).
		Build()
}

// trimAll trims entries and drops empty ones.
func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
