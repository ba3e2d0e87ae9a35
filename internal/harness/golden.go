package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/cascade-ir/cascade/internal/ir"
)

// AssertDump compares the dump of v against the named golden file under
// testdata/golden, relative to the calling test's package. Run the test
// with -update to rewrite the fixture.
func AssertDump(t *testing.T, name string, v ir.ValId) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(ir.Dump(v)))
}
