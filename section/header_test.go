package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/format"
)

func sampleHeader() Header {
	return Header{
		Flag:         NewFlag(format.CompressionZstd),
		K:            6,
		SyndromeRate: 16,
		Layers:       40,
		NumQubits:    10,
		Rounds:       4,
		GateCount:    312,
		Fingerprint:  0x0123456789abcdef,
	}
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		t.Run(map[bool]string{false: "little", true: "big"}[big], func(t *testing.T) {
			h := sampleHeader()
			if big {
				h.Flag.WithBigEndian()
			}

			data := h.Bytes()
			require.Len(t, data, HeaderSize)

			parsed, err := ParseHeader(append(data, 0xaa, 0xbb))
			require.NoError(t, err)
			require.Equal(t, h, parsed)
			require.Equal(t, !big, parsed.Flag.IsLittleEndian())
		})
	}
}

func TestHeader_ByteOrder(t *testing.T) {
	h := sampleHeader()
	le := h.Bytes()
	h.Flag.WithBigEndian()
	be := h.Bytes()

	require.Equal(t, []byte{6, 0, 0, 0}, le[4:8])
	require.Equal(t, []byte{0, 0, 0, 6}, be[4:8])

	h.Flag.WithLittleEndian()
	require.Equal(t, le, h.Bytes())
}

func TestHeader_ParseErrors(t *testing.T) {
	t.Run("size", func(t *testing.T) {
		_, err := ParseHeader([]byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
		require.ErrorIs(t, err, errs.ErrMalformedInput)

		var h Header
		require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidHeaderSize)
	})

	tests := []struct {
		name   string
		mutate func(b []byte)
		want   error
	}{
		{"magic", func(b []byte) { b[1] = 0xEA }, errs.ErrInvalidMagic},
		{"reserved bits", func(b []byte) { b[0] |= 0x01 }, errs.ErrMalformedInput},
		{"version", func(b []byte) { b[2] = 9 }, errs.ErrMalformedInput},
		{"compression", func(b []byte) { b[3] = 0 }, errs.ErrMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := sampleHeader()
			data := h.Bytes()
			tt.mutate(data)
			_, err := ParseHeader(data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
