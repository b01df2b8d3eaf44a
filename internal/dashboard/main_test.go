package dashboard

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

const (
	testTimeout = 2 * time.Second
	tick        = 5 * time.Millisecond
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
