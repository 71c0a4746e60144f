package compiler_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyotindersingh/goctok/lang/compiler"
	"github.com/jyotindersingh/goctok/lang/gc"
)

func TestCompileValidProgram(t *testing.T) {
	fn, err := compiler.Compile(`print "hello";`, gc.New())
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.Equal(t, 0, fn.Arity)
}

func TestCompileSyntaxErrorReportsLineAndLocation(t *testing.T) {
	_, err := compiler.Compile("var;\n", gc.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[line 1]")
	assert.Contains(t, err.Error(), "at ';'")
}

func TestCompileReturnFromTopLevelIsError(t *testing.T) {
	_, err := compiler.Compile(`return 1;`, gc.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return from top-level code.")
}

func TestCompileThisOutsideClassIsError(t *testing.T) {
	_, err := compiler.Compile(`print this;`, gc.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'this' outside of a class.")
}

func TestCompileSuperOutsideClassIsError(t *testing.T) {
	_, err := compiler.Compile(`fun f() { super.foo(); }`, gc.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'super'")
}

func TestCompileSuperWithoutSuperclassIsError(t *testing.T) {
	_, err := compiler.Compile(`class A { bad() { super.foo(); } }`, gc.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'super' in a class with no superclass.")
}

func TestCompileDuplicateLocalInSameScopeIsError(t *testing.T) {
	_, err := compiler.Compile(`{ var a = 1; var a = 2; }`, gc.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Already a variable with this name in this scope.")
}

func TestCompileReturnValueFromInitializerIsError(t *testing.T) {
	_, err := compiler.Compile(`class A { init() { return 1; } }`, gc.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return a value from an initializer.")
}

func TestCompileMaxParametersBoundary(t *testing.T) {
	params := make([]string, 255)
	for i := range params {
		params[i] = fmt.Sprintf("p%d", i)
	}
	src := fmt.Sprintf("fun f(%s) { return 0; }", strings.Join(params, ", "))
	_, err := compiler.Compile(src, gc.New())
	require.NoError(t, err)
}

func TestCompileTooManyParametersIsError(t *testing.T) {
	params := make([]string, 256)
	for i := range params {
		params[i] = fmt.Sprintf("p%d", i)
	}
	src := fmt.Sprintf("fun f(%s) { return 0; }", strings.Join(params, ", "))
	_, err := compiler.Compile(src, gc.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't have more than 255 parameters.")
}

func TestCompileMaxConstantsBoundary(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 256; i++ {
		fmt.Fprintf(&b, "print %d;\n", i)
	}
	_, err := compiler.Compile(b.String(), gc.New())
	require.NoError(t, err)
}

func TestCompileTooManyConstantsIsError(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 257; i++ {
		fmt.Fprintf(&b, "print %d;\n", i)
	}
	_, err := compiler.Compile(b.String(), gc.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many constants")
}
