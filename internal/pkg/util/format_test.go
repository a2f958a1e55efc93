package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1500, "1.5K"},
		{12345, "12.3K"},
		{999999, "1000K"},
		{1000000, "1M"},
		{2500000, "2.5M"},
		{1234567890, "1234.6M"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, CompactNumber(tt.in))
		})
	}
}

func TestStrSliceToUInt64Slice(t *testing.T) {
	out, err := StrSliceToUInt64Slice([]string{"1", "42", "99"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 42, 99}, out)

	_, err = StrSliceToUInt64Slice([]string{"1", "abc"})
	assert.Error(t, err)
}
