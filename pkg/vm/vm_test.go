/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loxgo/loxgo/pkg/vm"
)

// run compiles and interprets source in a fresh VM, returning everything
// `print` wrote and any error the VM produced. Mirrors the pkg/compiler
// tests' helper of the same name, since Interpret is the one entry point
// both packages exercise.
func run(t *testing.T, source string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	v := vm.New(&out)
	err := v.Interpret(source)
	if err != nil {
		return out.String(), err
	}
	return out.String(), nil
}

func TestVM_StringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	require.Equal(t, "foobar\n", out)
}

func TestVM_StringEqualityIsContentBased(t *testing.T) {
	out, err := run(t, `print ("foo" + "bar") == "foobar";`)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestVM_TypeErrorOnMixedAddition(t *testing.T) {
	_, err := run(t, `print 1 + "two";`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Operands must be two numbers or two strings")
}

func TestVM_DivisionByZeroIsNotARuntimeError(t *testing.T) {
	// float64 semantics: 1.0 / 0.0 is +Inf, not an error (spec.md has no
	// integer type to trigger a division-by-zero trap).
	out, err := run(t, `print 1 / 0;`)
	require.NoError(t, err)
	require.Equal(t, "+Inf\n", out)
}

func TestVM_UndefinedGlobalIsRuntimeError(t *testing.T) {
	_, err := run(t, `print nope;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable 'nope'")
}

func TestVM_GlobalsSurviveAcrossStatements(t *testing.T) {
	out, err := run(t, `var x = 1; x = x + 1; x = x + 1; print x;`)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

// TestVM_GlobalsInlineCacheBeyondCapacity exercises more distinct globals
// than MaxGlobalsCache (spec.md §4.3's 100-entry bound): reads of the
// globals past the cache's capacity must still resolve correctly through
// the table fallback once the cache is full.
func TestVM_GlobalsInlineCacheBeyondCapacity(t *testing.T) {
	var b strings.Builder
	for i := 0; i < vm.MaxGlobalsCache+10; i++ {
		b.WriteString("var g")
		writeInt(&b, i)
		b.WriteString(" = ")
		writeInt(&b, i)
		b.WriteString(";\n")
	}
	for i := 0; i < vm.MaxGlobalsCache+10; i++ {
		b.WriteString("print g")
		writeInt(&b, i)
		b.WriteString(";\n")
	}

	out, err := run(t, b.String())
	require.NoError(t, err)

	var want strings.Builder
	for i := 0; i < vm.MaxGlobalsCache+10; i++ {
		writeInt(&want, i)
		want.WriteByte('\n')
	}
	require.Equal(t, want.String(), out)
}

func writeInt(b *strings.Builder, n int) {
	if n == 0 {
		b.WriteByte('0')
		return
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}
