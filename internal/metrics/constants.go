package metrics

// Histogram bucket parameters.
const (
	// BucketStart10ms is the first bucket for API request latency.
	BucketStart10ms = 0.01
	// BucketFactor2 doubles each bucket.
	BucketFactor2 = 2
	// BucketCount10 covers 10ms to ~5s.
	BucketCount10 = 10
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error type label values for API requests.
const (
	ErrorTypeTransport = "transport"
	ErrorTypeTimeout   = "timeout"
	ErrorTypeCanceled  = "canceled"
	ErrorTypeStatus    = "status"
)
