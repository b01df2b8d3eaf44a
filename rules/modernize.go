//go:build ruleguard

package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// WaitGroupGo prefers sync.WaitGroup.Go over the Add/Done pair (Go 1.25+):
//
//	wg.Go(func() {
//	    fetch(ctx, city)
//	})
func WaitGroupGo(m dsl.Matcher) {
	m.Match(`go func() { defer $wg.Done(); $*_ }()`).
		Where(m["wg"].Type.Is("*sync.WaitGroup")).
		Report("use $wg.Go(func() { ... }) instead of go func() { defer $wg.Done(); ... }()").
		Suggest("$wg.Go(func() { $*_ })")

	m.Match(`$wg.Add(1)`).
		Where(m["wg"].Type.Is("*sync.WaitGroup")).
		Report("consider $wg.Go(), which calls Add(1) itself")
}

// MinMaxBuiltin prefers the min and max builtins over float64 round trips.
func MinMaxBuiltin(m dsl.Matcher) {
	m.Match(`int(math.Min(float64($a), float64($b)))`).
		Report("use min($a, $b)").
		Suggest("min($a, $b)")

	m.Match(`int(math.Max(float64($a), float64($b)))`).
		Report("use max($a, $b)").
		Suggest("max($a, $b)")
}

// ContextInTests prefers t.Context(), which is cancelled when the test ends.
func ContextInTests(m dsl.Matcher) {
	m.Match(
		`$ctx := context.Background()`,
		`$ctx := context.TODO()`,
	).
		Where(m.File().Name.Matches(`_test\.go$`)).
		Report("in tests, use t.Context() instead")
}

// StringsCut prefers strings.Cut over Index plus slicing.
func StringsCut(m dsl.Matcher) {
	m.Match(`$i := strings.Index($s, $sep); if $i >= 0 { $*_ }`).
		Report("consider strings.Cut($s, $sep)")
}
