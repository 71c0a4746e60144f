package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyotindersingh/goctok/lang/compiler"
	"github.com/jyotindersingh/goctok/lang/gc"
	"github.com/jyotindersingh/goctok/lang/vm"
)

func runSource(t *testing.T, src string) (string, error) {
	t.Helper()
	collector := gc.New()
	m := vm.New(collector)
	var buf bytes.Buffer
	m.Stdout = &buf

	fn, err := compiler.Compile(src, collector)
	require.NoError(t, err, "compile error for: %s", src)

	err = m.Interpret(fn)
	return buf.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := runSource(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := runSource(t, `var a = "hi"; var b = "!"; print a + b;`)
	require.NoError(t, err)
	assert.Equal(t, "hi!\n", out)
}

func TestForLoop(t *testing.T) {
	out, err := runSource(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestClosureCounter(t *testing.T) {
	src := `
fun makeCounter() {
  var i = 0;
  fun count() { i = i + 1; return i; }
  return count;
}
var c = makeCounter();
print c(); print c(); print c();
`
	out, err := runSource(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInheritanceAndSuper(t *testing.T) {
	src := `
class A { greet() { print "A"; } }
class B < A { greet() { super.greet(); print "B"; } }
B().greet();
`
	out, err := runSource(t, src)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\n", out)
}

func TestInitAndFields(t *testing.T) {
	src := `
class Box { init(v) { this.v = v; } }
print Box(42).v;
`
	out, err := runSource(t, src)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestEmptyProgramProducesNoOutput(t *testing.T) {
	out, err := runSource(t, ``)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRuntimeErrorMixedOperandTypes(t *testing.T) {
	_, err := runSource(t, `1 + "x";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be two numbers or two strings.")
}

func TestRuntimeErrorCallingNil(t *testing.T) {
	_, err := runSource(t, `var x; x();`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestRuntimeErrorUndefinedProperty(t *testing.T) {
	_, err := runSource(t, `class A{} A().foo;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined property")
}

func TestRuntimeErrorNonClassSuperclass(t *testing.T) {
	_, err := runSource(t, `class A{} var notAClass = 3; class B < notAClass {}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Superclass must be a class.")
}

func TestRuntimeErrorStackTraceFormat(t *testing.T) {
	src := `
fun boom() { return 1 + "x"; }
boom();
`
	_, err := runSource(t, src)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "in boom()"))
	assert.True(t, strings.Contains(err.Error(), "in script()"))
}

func TestCallFrameDepthLimit(t *testing.T) {
	src := `
fun recurse(n) {
  if (n > 0) return recurse(n - 1);
  return 0;
}
print recurse(70);
`
	_, err := runSource(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stack overflow.")
}

func TestClockNativeRegistered(t *testing.T) {
	out, err := runSource(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}
