package decoder

import (
	"strings"

	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/layout"
)

// outcome is one parsed counts key.
type outcome struct {
	// syndrome holds every syndrome bit, in key order.
	syndrome string
	data     string
	rounds   int
}

func (o outcome) accepted() bool {
	if strings.ContainsRune(o.syndrome, '1') {
		return false
	}

	return strings.Count(o.data, "1")%2 == 0
}

// parse splits a key into syndrome and data bits and checks its shape.
func (d *Decoder) parse(key string) (outcome, error) {
	if err := checkBinary(key); err != nil {
		return outcome{}, err
	}

	var o outcome
	var err error
	if strings.IndexByte(key, ' ') >= 0 {
		o, err = d.parseSpaced(key)
	} else {
		o, err = d.parsePacked(key)
	}
	if err != nil {
		return outcome{}, err
	}

	if d.rounds >= 0 && o.rounds != d.rounds {
		return outcome{}, errs.MalformedInput("outcome %q has %d syndrome rounds, expected %d", key, o.rounds, d.rounds)
	}

	return o, nil
}

// parseSpaced handles keys with one space between registers.
func (d *Decoder) parseSpaced(key string) (outcome, error) {
	fields := strings.Split(key, " ")
	data := fields[len(fields)-1]
	syn := fields[:len(fields)-1]

	if len(data) != d.layout.NumDataQubits() {
		return outcome{}, d.dataWidthError(key, len(data))
	}

	var sb strings.Builder
	sb.Grow(len(syn) * layout.SyndromeBits)
	for _, f := range syn {
		if len(f) != layout.SyndromeBits {
			return outcome{}, errs.MalformedInput("outcome %q has a %d-bit syndrome register, expected %d",
				key, len(f), layout.SyndromeBits)
		}
		sb.WriteString(f)
	}

	return outcome{syndrome: sb.String(), data: data, rounds: len(syn)}, nil
}

// parsePacked handles keys without register separators: syndrome bits followed by the data
// register. Every even key width splits into some data register plus whole rounds, so the
// split needs the pinned round count.
func (d *Decoder) parsePacked(key string) (outcome, error) {
	if d.rounds < 0 {
		// the smallest code has 4 data qubits and every circuit has at least one round
		if len(key)%2 != 0 || len(key) < 4+layout.SyndromeBits {
			return outcome{}, errs.MalformedInput("outcome %q has %d bits, no layout produces that width", key, len(key))
		}

		return outcome{}, errs.WithHint(
			errs.InvalidParameter("outcome %q has no register separators and the syndrome round count is not pinned", key),
			"decode packed outcomes with WithCircuitLayers or WithMetadata",
		)
	}

	syn := d.rounds * layout.SyndromeBits
	if len(key) != syn+d.layout.NumDataQubits() {
		return outcome{}, d.dataWidthError(key, len(key)-syn)
	}

	return outcome{syndrome: key[:syn], data: key[syn:], rounds: d.rounds}, nil
}

// dataWidthError classifies a data register of the wrong width. A width that is itself a
// code size means the counts belong to a circuit compiled for a different k.
func (d *Decoder) dataWidthError(key string, width int) error {
	n := d.layout.NumDataQubits()
	if width >= 4 && width%2 == 0 {
		return errs.InvalidParameter("outcome %q has a %d-qubit data register, k=%d needs %d",
			key, width, d.layout.K(), n)
	}

	return errs.MalformedInput("outcome %q has a %d-bit data register, expected %d", key, width, n)
}

func checkBinary(key string) error {
	if key == "" {
		return errs.MalformedInput("empty outcome")
	}
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '0', '1', ' ':
		default:
			return errs.MalformedInput("outcome %q has non-binary character %q at %d", key, key[i], i)
		}
	}

	return nil
}
