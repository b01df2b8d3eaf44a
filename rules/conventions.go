//go:build ruleguard

// Package gorules contains custom linting rules for golangci-lint via ruleguard.
// They enforce weatherdash conventions: module-scoped logging, categorised
// errors and the shared HTTP client.
package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// StructuredLogging flags ad-hoc printing outside the command layer.
// Library packages log through internal/logger so output honours the
// configured levels and carries the trace id:
//
//	log := logger.Module("notify")
//	log.Warn("alert delivery failed", logger.String("sink", name), logger.Error(err))
func StructuredLogging(m dsl.Matcher) {
	m.Match(
		`fmt.Println($*_)`,
		`fmt.Printf($*_)`,
		`fmt.Print($*_)`,
	).
		Where(m.File().PkgPath.Matches(`/internal/`) && !m.File().Name.Matches(`_test\.go$`)).
		Report("write to an io.Writer or use internal/logger instead of printing to stdout")

	m.Match(
		`log.Printf($*_)`,
		`log.Println($*_)`,
		`log.Print($*_)`,
		`log.Fatalf($*_)`,
		`log.Fatal($*_)`,
	).
		Where(m.File().Imports("log")).
		Report("use internal/logger instead of the standard log package")
}

// CategorisedErrors flags plain string errors in library packages. Errors
// that reach the user are built with internal/errors so they carry a
// component and category; sentinels use errors.NewStd.
func CategorisedErrors(m dsl.Matcher) {
	m.Match(`errors.New($msg)`).
		Where(m["msg"].Type.Is("string") &&
			m.File().PkgPath.Matches(`/internal/`) &&
			!m.File().Name.Matches(`_test\.go$`)).
		Report("use errors.Newf(...).Component(...).Category(...).Build(), or errors.NewStd for sentinels")
}

// SharedHTTPClient flags the net/http package-level client. Requests go
// through internal/httpclient for timeouts, the User-Agent, the request id
// and metrics hooks.
func SharedHTTPClient(m dsl.Matcher) {
	m.Match(
		`http.Get($*_)`,
		`http.Post($*_)`,
		`http.Head($*_)`,
		`http.PostForm($*_)`,
		`http.DefaultClient`,
	).
		Where(!m.File().PkgPath.Matches(`/internal/httpclient$`) && !m.File().Name.Matches(`_test\.go$`)).
		Report("use internal/httpclient instead of the default net/http client")
}
