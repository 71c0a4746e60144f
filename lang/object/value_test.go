package object_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jyotindersingh/goctok/lang/object"
)

func TestFalseyness(t *testing.T) {
	assert.True(t, object.Nil.Falsey())
	assert.True(t, object.Bool(false).Falsey())
	assert.False(t, object.Bool(true).Falsey())
	assert.False(t, object.Number(0).Falsey())
	assert.False(t, object.FromObj(&object.String{Bytes: nil}).Falsey())
}

func TestEqual(t *testing.T) {
	assert.True(t, object.Number(1).Equal(object.Number(1)))
	assert.False(t, object.Number(1).Equal(object.Number(2)))
	assert.False(t, object.Number(1).Equal(object.Bool(true)))
	assert.True(t, object.Nil.Equal(object.Nil))

	nan := object.Number(math.NaN())
	assert.False(t, nan.Equal(nan))
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "nil", object.Nil.String())
	assert.Equal(t, "true", object.Bool(true).String())
	assert.Equal(t, "1.5", object.Number(1.5).String())
	assert.Equal(t, "3", object.Number(3).String())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "nil", object.Nil.TypeName())
	assert.Equal(t, "bool", object.Bool(true).TypeName())
	assert.Equal(t, "number", object.Number(1).TypeName())
	s := &object.String{Bytes: []byte("hi")}
	assert.Equal(t, "string", object.FromObj(s).TypeName())
}
