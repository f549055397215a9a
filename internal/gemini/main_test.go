package gemini

import (
	"testing"

	"go.uber.org/goleak"
)

// Pull iterators park a goroutine between pulls; every test must drain or
// close its stream, and this catches the ones that do not.
func TestMain(m *testing.M) {
	// go.opencensus.io (linked in via the genai SDK) starts a worker
	// goroutine in package init that never exits; it is not a test leak.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}
