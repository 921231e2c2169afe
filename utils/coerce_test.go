package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want int
	}{
		{"int", 5, 5},
		{"int64", int64(42), 42},
		{"float64", 3.9, 3},
		{"numeric string", "7", 7},
		{"padded string", " 12 ", 12},
		{"float string", "5.0", 5},
		{"bytes", []byte("9"), 9},
		{"garbage", "abc", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CoerceInt(tc.in))
		})
	}
}

func TestCoerceTime(t *testing.T) {
	got := CoerceTime("2025-03-15")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *got)

	got = CoerceTime("2025-03-15 18:30:00")
	require.NotNil(t, got)
	assert.Equal(t, 18, got.Hour())

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	got = CoerceTime(now)
	require.NotNil(t, got)
	assert.True(t, got.Equal(now))

	assert.Nil(t, CoerceTime("not a date"))
	assert.Nil(t, CoerceTime(""))
	assert.Nil(t, CoerceTime(nil))
	assert.Nil(t, CoerceTime(time.Time{}))
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "hi", CoerceString("hi"))
	assert.Equal(t, "hi", CoerceString([]byte("hi")))
	assert.Equal(t, "", CoerceString(nil))
	assert.Equal(t, "", CoerceString(7))
}
