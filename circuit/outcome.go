package circuit

import (
	"strings"

	"github.com/arloliu/iceberg/errs"
)

// FormatOutcome renders one shot's classical bits as a counts key.
//
// bits is indexed by classical bit and must have NumClbits entries, each 0 or 1. Registers
// are printed in reverse creation order separated by a single space, each one most
// significant bit first.
func (c *Circuit) FormatOutcome(bits []uint8) (string, error) {
	if len(bits) != c.numClbits {
		return "", errs.InvalidParameter("outcome has %d bits, circuit has %d clbits", len(bits), c.numClbits)
	}

	var sb strings.Builder
	sb.Grow(c.numClbits + len(c.registers))
	for ri := len(c.registers) - 1; ri >= 0; ri-- {
		r := c.registers[ri]
		if ri != len(c.registers)-1 {
			sb.WriteByte(' ')
		}
		for b := r.Offset + r.Size - 1; b >= r.Offset; b-- {
			switch bits[b] {
			case 0:
				sb.WriteByte('0')
			case 1:
				sb.WriteByte('1')
			default:
				return "", errs.InvalidParameter("clbit %d has non-binary value %d", b, bits[b])
			}
		}
	}

	return sb.String(), nil
}
