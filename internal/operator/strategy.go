package operator

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Strategy selects the policy a pass runs
type Strategy int

const (
	Balanced Strategy = iota
	Aggressive
	Conservative
)

// ErrUnknownStrategy is returned by ParseStrategy
var ErrUnknownStrategy = errors.New("unknown operator strategy")

var strategyNames = map[Strategy]string{
	Balanced:     "balanced",
	Aggressive:   "aggressive",
	Conservative: "conservative",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Strategies lists every strategy
func Strategies() []Strategy {
	return []Strategy{Balanced, Aggressive, Conservative}
}

// ParseStrategy accepts a strategy name in any letter case
func ParseStrategy(name string) (Strategy, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	for s, n := range strategyNames {
		if n == key {
			return s, nil
		}
	}
	return Balanced, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
