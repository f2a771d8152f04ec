// Package layout generates the seating layout of an event from the
// section specifications supplied by an organizer.  Generation is a
// pure function: the same input always yields the same ordered seat
// sequence, which keeps the attendee-facing seat map stable and makes
// the output reproducible in tests.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// ErrDuplicateSeatID is returned when two sections would generate the
// same seat identifier.  Seat IDs carry the lowercased section name as
// a prefix, so this can only happen when two sections normalize to the
// same name (e.g. "Gold" and "GOLD").
var ErrDuplicateSeatID = errors.New("duplicate seat id in layout")

// ErrInvalidSection is returned for a section with a negative row or
// seat count or an empty name.  Zero rows or zero seats per row is not
// an error; such a section simply contributes no seats.
var ErrInvalidSection = errors.New("invalid section spec")

// Generate expands the given sections, in order, into the flat seat
// sequence of an event.  Within a section, seats are emitted row by
// row and column by column.  Every seat starts out free.  Seat IDs are
// formed as "<section>-<rowLabel><column>" with the section name
// lowercased, e.g. "gold-A1".  Global uniqueness of IDs within the
// result is verified and violations are rejected with
// ErrDuplicateSeatID.
func Generate(sections []model.SectionSpec) ([]model.Seat, error) {
	total := 0
	for _, sec := range sections {
		if strings.TrimSpace(sec.Name) == "" {
			return nil, fmt.Errorf("%w: empty section name", ErrInvalidSection)
		}
		if sec.Rows < 0 || sec.SeatsPerRow < 0 {
			return nil, fmt.Errorf("%w: section %q has negative dimensions", ErrInvalidSection, sec.Name)
		}
		total += sec.Rows * sec.SeatsPerRow
	}
	seats := make([]model.Seat, 0, total)
	seen := make(map[string]struct{}, total)
	for _, sec := range sections {
		name := strings.ToLower(strings.TrimSpace(sec.Name))
		for r := 1; r <= sec.Rows; r++ {
			label := RowLabel(r)
			for s := 1; s <= sec.SeatsPerRow; s++ {
				id := fmt.Sprintf("%s-%s%d", name, label, s)
				if _, ok := seen[id]; ok {
					return nil, fmt.Errorf("%w: %s", ErrDuplicateSeatID, id)
				}
				seen[id] = struct{}{}
				seats = append(seats, model.Seat{
					ID:          id,
					Row:         r,
					Column:      s,
					SectionType: name,
				})
			}
		}
	}
	return seats, nil
}

// RowLabel converts a 1-based row number to its alphabetical label:
// 1→A, 2→B, … 26→Z, 27→AA, 28→AB and so on.  Rows beyond 26 extend
// into two-letter labels rather than being rejected, so there is no
// ceiling on layout height.  Non-positive rows yield an empty string.
func RowLabel(row int) string {
	if row < 1 {
		return ""
	}
	i := row - 1 // zero-based for base-26 arithmetic
	res := []rune{}
	for {
		rem := i % 26
		res = append(res, rune('A'+rem))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// RowNumber is the inverse of RowLabel.  It converts a label such as
// "A" or "AA" back to its 1-based row number and reports whether the
// label was well formed (non-empty, ASCII A-Z only).
func RowNumber(label string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'A' || ch > 'Z' {
			return 0, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n, true
}
