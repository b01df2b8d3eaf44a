// Package spinner draws a braille progress indicator while an action runs.
package spinner

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultInterval is the time between frames.
const DefaultInterval = 80 * time.Millisecond

// Spinner struct holds the spinner state
type Spinner struct {
	mu       sync.Mutex
	w        io.Writer
	message  string
	frames   []string
	index    int
	interval time.Duration
}

// NewSpinner creates a spinner that writes to w, followed by message.
func NewSpinner(w io.Writer, message string) *Spinner {
	// Braille arrow sequence
	return &Spinner{
		w:       w,
		message: message,
		frames: []string{
			"⣀⣀ ",
			"⣄⣀ ",
			"⣤⣀ ",
			"⣦⣄ ",
			"⣶⣤ ",
			"⣿⣦ ",
			"⣿⣷ ",
			"⣿⣿ ",
			"⣿⣿ ",
			"⣷⣿ ",
			"⣦⣿ ",
			"⣤⣷ ",
			"⣄⣦ ",
			"⣀⣤ ",
			"⣀⣄ ",
			"⣀⣀ ",
		},
		interval: DefaultInterval,
	}
}

// Update advances the spinner to the next frame and prints it.
func (s *Spinner) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Hide cursor
	fmt.Fprint(s.w, "\033[?25l")
	fmt.Fprintf(s.w, "\r%s%s", s.frames[s.index], s.message)

	s.index++
	if s.index >= len(s.frames) {
		s.index = 0
	}
}

// Cleanup clears the spinner line and shows the cursor
func (s *Spinner) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprint(s.w, "\r\033[K")  // Clear the line
	fmt.Fprint(s.w, "\033[?25h") // Show cursor
}

// Run draws frames until ctx is done, then cleans up.
func (s *Spinner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.Cleanup()

	s.Update()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Update()
		}
	}
}

// Start runs a spinner in the background. The returned stop function
// ends it and waits until the line has been cleared.
func Start(ctx context.Context, w io.Writer, message string) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s := NewSpinner(w, message)

	go func() {
		defer close(done)
		s.Run(ctx)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
