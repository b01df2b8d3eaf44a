package httpclient

import "context"

type operationKey struct{}

// WithOperation labels requests made with ctx, for example "list_favorites".
// Hooks read the label back with OperationFromContext.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFromContext returns the label set by WithOperation, or "unknown".
func OperationFromContext(ctx context.Context) string {
	if ctx != nil {
		if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
			return op
		}
	}
	return "unknown"
}
