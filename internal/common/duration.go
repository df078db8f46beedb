package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

// Duration is a wrapper type that parses time duration from text.
type Duration struct {
	time.Duration `validate:"required"`
}

func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// UnmarshalText unmarshalls time duration from text.
// On top of time.ParseDuration it accepts a leading whole number of days, as in "7d" or "1d12h".
func (d *Duration) UnmarshalText(data []byte) error {
	duration, err := ParseDuration(string(data))
	if err != nil {
		return err
	}
	d.Duration = duration

	return nil
}

// ParseDuration parses a duration that may start with a day component.
func ParseDuration(s string) (time.Duration, error) {
	days, rest, found := strings.Cut(s, "d")
	if !found {
		return time.ParseDuration(s)
	}

	n, err := strconv.ParseUint(days, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("time: invalid duration %q", s)
	}
	total := time.Duration(n) * 24 * time.Hour

	if rest != "" {
		extra, err := time.ParseDuration(rest)
		if err != nil {
			return 0, fmt.Errorf("time: invalid duration %q", s)
		}
		if extra < 0 {
			return 0, fmt.Errorf("time: invalid duration %q", s)
		}
		total += extra
	}

	return total, nil
}

// MarshalText renders the duration in the same format accepted by UnmarshalText.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Duration",
		Description: "Duration expressed in units: [ns, us, ms, s, m, h, d]",
		Examples: []any{
			"4s",
			"30m",
			"1d",
		},
	}
}
