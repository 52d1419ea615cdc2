package notepolicy

import (
	"errors"
	"fmt"
)

// Utility is the partner organization a user belongs to.
type Utility string

const (
	North Utility = "north"
	South Utility = "south"
)

var ErrUnknownUtility = errors.New("unknown utility")

// Thresholds are the word counts at which a note stops being short and
// stops being medium. Short is always below Medium.
type Thresholds struct {
	Short  int
	Medium int
}

var thresholds = map[Utility]Thresholds{
	North: {Short: 50, Medium: 100},
	South: {Short: 60, Medium: 120},
}

// Utilities lists every known utility in a stable order.
func Utilities() []Utility {
	return []Utility{North, South}
}

// ThresholdsFor returns the fixed thresholds of u.
func ThresholdsFor(u Utility) (Thresholds, error) {
	t, ok := thresholds[u]
	if !ok {
		return Thresholds{}, fmt.Errorf("%w: %q", ErrUnknownUtility, string(u))
	}
	return t, nil
}

func (u Utility) Valid() bool {
	_, ok := thresholds[u]
	return ok
}

func (u Utility) String() string {
	return string(u)
}
