/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package langtest_test

import (
	"testing"

	"github.com/loxgo/loxgo/pkg/langtest"
)

// TestRunSuite runs loxgo's golden-file test suite. This is not a proper
// unit test, but a simple way to run the end-to-end fixtures and, more
// importantly, get code coverage reports for them.
func TestRunSuite(t *testing.T) {
	if err := langtest.ExecuteSuite("testdata"); err != nil {
		t.Fatalf("Error running test suite: %v", err)
	}
}
