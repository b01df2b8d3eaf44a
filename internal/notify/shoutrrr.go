package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/nicholas-fedor/shoutrrr"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/tphakala/weatherdash/internal/errors"
)

// shoutrrrSender is the part of the shoutrrr router the sink uses.
type shoutrrrSender interface {
	Send(message string, params *stypes.Params) []error
}

// ShoutrrrSink sends alerts through one or more shoutrrr service URLs.
type ShoutrrrSink struct {
	sender shoutrrrSender
	title  string
}

// NewShoutrrrSink builds a sender for urls. Invalid URLs are reported
// without echoing tokens embedded in them.
func NewShoutrrrSink(urls []string, title string, timeout time.Duration) (*ShoutrrrSink, error) {
	urls = trimAll(urls)
	if len(urls) == 0 {
		return nil, fmt.Errorf("at least one notification URL is required")
	}

	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, errors.New(fmt.Errorf("invalid notification URL: %s", errors.ScrubMessage(err.Error()))).
			Component(componentName).
			Category(errors.CategoryConfiguration).
			Build()
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}
	sender.SetLogger(log.New(io.Discard, "", 0))

	return &ShoutrrrSink{sender: sender, title: title}, nil
}

// Name implements Sink.
func (s *ShoutrrrSink) Name() string { return "shoutrrr" }

// Send implements Sink. The router applies its own timeout.
func (s *ShoutrrrSink) Send(ctx context.Context, alert Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := stypes.Params{}
	title := alert.Title()
	if s.title != "" {
		title = s.title + ": " + alert.City
	}
	params.SetTitle(title)

	var errs []error
	for _, err := range s.sender.Send(alert.Message(), &params) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Sink.
func (s *ShoutrrrSink) Close() error { return nil }
