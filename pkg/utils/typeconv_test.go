package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("  abc "))
	assert.Equal(t, "xyz", ToString([]byte("xyz")))
	assert.Equal(t, "12", ToString(int64(12)))
}

func TestToInt64(t *testing.T) {
	n, err := ToInt64("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = ToInt64(float64(3.9))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = ToInt64("7.5")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, err = ToInt64("siete")
	assert.Error(t, err)

	_, err = ToInt64(struct{}{})
	assert.Error(t, err)
}

func TestIntOrZero(t *testing.T) {
	assert.Equal(t, int64(0), IntOrZero(nil))
	assert.Equal(t, int64(0), IntOrZero(""))
	assert.Equal(t, int64(0), IntOrZero("n/a"))
	assert.Equal(t, int64(15), IntOrZero(int64(15)))
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
		ok   bool
	}{
		{"nil", nil, "0", false},
		{"blank", "  ", "0", false},
		{"float", 12.5, "12.5", true},
		{"int", int64(3), "3", true},
		{"text", "10.25", "10.25", true},
		{"comma decimal", "10,25", "10.25", true},
		{"dot thousands comma decimal", "1.234,56", "1234.56", true},
		{"comma thousands dot decimal", "1,234.56", "1234.56", true},
		{"repeated dot thousands", "1.234.567", "1234567", true},
		{"repeated comma thousands", "1,234,567", "1234567", true},
		{"garbage", "abc", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ToDecimal(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(d), "got %s", d)
		})
	}
}
