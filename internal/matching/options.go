package matching

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/forgo/shepherd/api/internal/model"
)

var ErrInvalidSort = errors.New("invalid sort option")

// SortField selects the ordering of match results
type SortField string

const (
	SortCompatibility SortField = "compatibility"
	SortName          SortField = "name"
	SortCommitment    SortField = "commitment"
)

// SortOrder is ascending or descending
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Options controls Match
type Options struct {
	Filters Filters
	Sort    SortField // default compatibility
	Order   SortOrder // default desc
}

// ParseSort validates sort and order query values; empty values take the
// defaults
func ParseSort(field, order string) (SortField, SortOrder, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(field)))
	switch f {
	case "":
		f = SortCompatibility
	case SortCompatibility, SortName, SortCommitment:
	default:
		return "", "", fmt.Errorf("%w: sort must be compatibility, name, or commitment", ErrInvalidSort)
	}

	o := SortOrder(strings.ToLower(strings.TrimSpace(order)))
	switch o {
	case "":
		o = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return "", "", fmt.Errorf("%w: order must be asc or desc", ErrInvalidSort)
	}
	return f, o, nil
}

// Filters narrow the catalog. Values within a category are OR'd and
// categories are AND'd; empty categories match everything.
type Filters struct {
	Search           string
	PersonalityTypes []string
	Gifts            []string
	Skills           []string
	// PassionGroups match when a ministry passion group contains the value,
	// ignoring case
	PassionGroups    []string
	CommitmentLevels []model.CommitmentLevel
}

// Matches reports whether the ministry passes every filter
func (f Filters) Matches(m model.Ministry) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(m.Name), q) && !strings.Contains(strings.ToLower(m.Description), q) {
			return false
		}
	}
	rt := m.RecommendedTraits
	if !anyExact(f.PersonalityTypes, rt.PersonalityTypes) {
		return false
	}
	if !anyExact(f.Gifts, rt.SpiritualGifts) {
		return false
	}
	if !anyExact(f.Skills, rt.SkillTypes) {
		return false
	}
	if !anySubstring(f.PassionGroups, rt.PassionGroups) {
		return false
	}
	if len(f.CommitmentLevels) > 0 {
		found := false
		for _, c := range f.CommitmentLevels {
			if c == m.CommitmentLevel {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func anyExact(wanted, have []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if model.Contains(have, w) {
			return true
		}
	}
	return false
}

func anySubstring(wanted, have []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		for _, h := range have {
			if strings.Contains(strings.ToLower(h), w) {
				return true
			}
		}
	}
	return false
}

// Sort orders results in place. Ties fall back to name then id, ascending.
func Sort(results []model.MatchResult, field SortField, order SortOrder) {
	if field == "" {
		field = SortCompatibility
	}
	if order == "" {
		order = OrderDesc
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		var cmp int
		switch field {
		case SortName:
			cmp = strings.Compare(strings.ToLower(a.Ministry.Name), strings.ToLower(b.Ministry.Name))
		case SortCommitment:
			cmp = a.Ministry.CommitmentLevel.Ordinal() - b.Ministry.CommitmentLevel.Ordinal()
		default:
			cmp = a.CompatibilityScore - b.CompatibilityScore
		}
		if cmp != 0 {
			if order == OrderDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		if a.Ministry.Name != b.Ministry.Name {
			return a.Ministry.Name < b.Ministry.Name
		}
		return a.Ministry.ID < b.Ministry.ID
	})
}
