package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Spec is a parsed countdown length in whole seconds.
type Spec uint64

// maxSeconds bounds Spec so Duration can never overflow time.Duration.
const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))

var (
	ErrEmpty            = errors.New("duration is empty")
	ErrMissingNumber    = errors.New("missing number before unit")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrOutOfRange       = errors.New("value out of range")
)

// Parse converts compact human notation into a Spec. Digits accumulate left
// to right; each unit letter (s, m, h) folds the pending number into the
// running total. Leftover digits with no trailing unit count as seconds, so
// "1h1m1" means 1h1m1s. Units may repeat or appear in any order; they are
// folded strictly in the order written.
func Parse(input string) (Spec, error) {
	if input == "" {
		return 0, ErrEmpty
	}

	var total uint64
	pending := ""

	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
			pending += string(r)
		case r == 's' || r == 'm' || r == 'h':
			if pending == "" {
				return 0, fmt.Errorf("%w %q in %q", ErrMissingNumber, r, input)
			}
			value, err := parseNumber(pending)
			if err != nil {
				return 0, err
			}
			total, err = accumulate(total, value, unitSeconds(r))
			if err != nil {
				return 0, err
			}
			pending = ""
		default:
			return 0, fmt.Errorf("%w %q in %q", ErrInvalidCharacter, r, input)
		}
	}

	if pending != "" {
		value, err := parseNumber(pending)
		if err != nil {
			return 0, err
		}
		total, err = accumulate(total, value, 1)
		if err != nil {
			return 0, err
		}
	}

	return Spec(total), nil
}

func (s Spec) Seconds() uint64 {
	return uint64(s)
}

// Duration returns the total as a time.Duration. Parse bounds the total, so
// the conversion cannot overflow.
func (s Spec) Duration() time.Duration {
	return time.Duration(s) * time.Second
}

func (s Spec) String() string {
	return s.Duration().String()
}

func unitSeconds(unit rune) uint64 {
	switch unit {
	case 'm':
		return 60
	case 'h':
		return 3600
	default:
		return 1
	}
}

func parseNumber(digits string) (uint64, error) {
	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, digits)
	}
	return value, nil
}

func accumulate(total, value, scale uint64) (uint64, error) {
	if value > maxSeconds/scale {
		return 0, ErrOutOfRange
	}
	scaled := value * scale
	if total > maxSeconds-scaled {
		return 0, ErrOutOfRange
	}
	return total + scaled, nil
}
