package model

import (
	"fmt"

	"github.com/arloliu/mixmc/errs"
)

// Group identifies which combination of the latent means generates an observation.
type Group uint8

const (
	// Group1 observations are centred on (mu1, mu2).
	Group1 Group = iota + 1
	// Group2 observations are centred on (gamma1, gamma2).
	Group2
	// Group3 observations are centred on the midpoint of mu and gamma.
	Group3
	// Group4 observations are centred on tau*mu + (1-tau)*gamma.
	Group4
)

// NumGroups is the number of group variants.
const NumGroups = 4

// Groups lists every valid group in order.
var Groups = [NumGroups]Group{Group1, Group2, Group3, Group4}

// ParseGroup converts a raw group code into a Group.
func ParseGroup(code int) (Group, error) {
	if code < int(Group1) || code > int(Group4) {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidGroup, code)
	}

	return Group(code), nil
}

// Valid reports whether g is one of the four groups.
func (g Group) Valid() bool {
	return g >= Group1 && g <= Group4
}

// Index returns the zero-based position of g, for indexing per-group arrays.
func (g Group) Index() int {
	return int(g) - 1
}

func (g Group) String() string {
	if !g.Valid() {
		return fmt.Sprintf("Group(%d)", uint8(g))
	}

	return fmt.Sprintf("group%d", uint8(g))
}
