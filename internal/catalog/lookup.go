package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownPart is returned when a query matches no catalog part.
var ErrUnknownPart = errors.New("unknown part")

// maxTypoDistance bounds how far a query may be from an id or short name
// and still resolve.
const maxTypoDistance = 2

// Lookup resolves query against parts by id or short name, case-insensitively.
// A query within maxTypoDistance edits of exactly one best candidate resolves
// to it; otherwise the error names the closest candidate.
func Lookup(parts []Part, query string) (Part, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Part{}, fmt.Errorf("empty query: %w", ErrUnknownPart)
	}
	for _, p := range parts {
		if strings.ToLower(p.ID) == q || strings.ToLower(p.ShortName) == q {
			return p, nil
		}
	}

	best, bestDist, tie := -1, 0, false
	for i, p := range parts {
		d := min(
			levenshtein.ComputeDistance(q, strings.ToLower(p.ID)),
			levenshtein.ComputeDistance(q, strings.ToLower(p.ShortName)),
		)
		switch {
		case best < 0 || d < bestDist:
			best, bestDist, tie = i, d, false
		case d == bestDist:
			tie = true
		}
	}
	if best < 0 {
		return Part{}, fmt.Errorf("%q: %w", query, ErrUnknownPart)
	}
	if bestDist <= maxTypoDistance && !tie {
		return parts[best], nil
	}
	return Part{}, fmt.Errorf("%q (did you mean %q?): %w", query, parts[best].ID, ErrUnknownPart)
}

// LookupAll resolves a comma separated list of queries, preserving order and
// dropping repeats.
func LookupAll(parts []Part, csv string) ([]Part, error) {
	var sel Selection
	for _, raw := range strings.Split(csv, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		p, err := Lookup(parts, raw)
		if err != nil {
			return nil, err
		}
		if err := sel.Add(p); err != nil && !errors.Is(err, ErrDuplicatePart) {
			return nil, err
		}
	}
	return sel.Parts(), nil
}

// Filter returns the parts whose id, short name or full name contains query,
// falling back to typo-tolerant matches when nothing contains it.
func Filter(parts []Part, query string) []Part {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return parts
	}
	var out []Part
	for _, p := range parts {
		if strings.Contains(strings.ToLower(p.ID), q) ||
			strings.Contains(strings.ToLower(p.ShortName), q) ||
			strings.Contains(strings.ToLower(p.FullName), q) {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, p := range parts {
		if levenshtein.ComputeDistance(q, strings.ToLower(p.ShortName)) <= maxTypoDistance {
			out = append(out, p)
		}
	}
	return out
}
