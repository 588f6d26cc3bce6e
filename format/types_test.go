package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iceberg/errs"
)

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"ZSTD", CompressionZstd},
		{" s2 ", CompressionS2},
		{"lz4", CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompressionType(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCompressionType("gzip")
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestCompressionType_Text(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var back CompressionType
		require.NoError(t, back.UnmarshalText(text))
		require.Equal(t, c, back)
	}

	_, err := CompressionType(9).MarshalText()
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
	require.Equal(t, "Unknown", CompressionType(0).String())
	require.False(t, CompressionType(0).Valid())
}
