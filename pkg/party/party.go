// Package party identifies participants in a PVSS/SCRAPE instance by their
// stable, 1-based position in the dealer's participant list, matching the
// teacher's party.ID usage (protocols/lss/*, protocols/lss/dealer/dealer.go).
package party

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/luxfi/pvss/pkg/curve"
)

// ID is a participant identifier. This module mints IDs as the decimal
// string of a participant's 1-based index ("1", "2", ...); id == "0" is
// forbidden per spec §4.3's tie-break rules.
type ID string

// NewID returns the canonical ID for a 1-based index.
func NewID(i int) ID {
	return ID(strconv.Itoa(i))
}

// Int parses the 1-based index this ID represents.
func (id ID) Int() (int, error) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, fmt.Errorf("party: invalid id %q: %w", id, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("party: id %q must be a positive 1-based index", id)
	}
	return n, nil
}

// Scalar maps this ID to its evaluation point in the scalar field, i.e.
// keyFromNum(i) in spec terms.
func (id ID) Scalar(group curve.Curve) (curve.Scalar, error) {
	n, err := id.Int()
	if err != nil {
		return nil, err
	}
	return curve.KeyFromNum(group, uint64(n)), nil
}

// IDSlice is an ordered list of participant IDs, the "Participants" value
// of spec §3.
type IDSlice []ID

// Sort returns a sorted copy, ascending by 1-based index.
func (s IDSlice) Sort() IDSlice {
	out := make(IDSlice, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool {
		ni, erri := out[i].Int()
		nj, errj := out[j].Int()
		if erri != nil || errj != nil {
			return out[i] < out[j]
		}
		return ni < nj
	})
	return out
}

// Contains reports whether id appears in s.
func (s IDSlice) Contains(id ID) bool {
	_, ok := s.Index(id)
	return ok
}

// Index returns the position of id within s, if present.
func (s IDSlice) Index(id ID) (int, bool) {
	for i, v := range s {
		if v == id {
			return i, true
		}
	}
	return 0, false
}

// Sequential builds the canonical 1..n participant list.
func Sequential(n int) IDSlice {
	out := make(IDSlice, n)
	for i := 0; i < n; i++ {
		out[i] = NewID(i + 1)
	}
	return out
}
