// Package view derives the displayed subset of the board from the type
// filter, the status filter and the search text.
package view

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/lostboard/internal/model"
)

type KindFilter int

const (
	KindAll KindFilter = iota
	KindLost
	KindFound
)

var kindFilterNames = [...]string{"all", "lost", "found"}

func (f KindFilter) String() string {
	if f < KindAll || f > KindFound {
		return "all"
	}
	return kindFilterNames[f]
}

// Next cycles all -> lost -> found -> all.
func (f KindFilter) Next() KindFilter { return (f + 1) % 3 }

func (f KindFilter) Match(it model.Item) bool {
	switch f {
	case KindLost:
		return it.Kind == model.KindLost
	case KindFound:
		return it.Kind == model.KindFound
	}
	return true
}

func ParseKindFilter(s string) (KindFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindAll, nil
	}
	for i, n := range kindFilterNames {
		if n == s {
			return KindFilter(i), nil
		}
	}
	return KindAll, fmt.Errorf("unknown type filter %q (want all, lost or found)", s)
}

type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusActive
	StatusDone
)

var statusFilterNames = [...]string{"all", "active", "done"}

func (f StatusFilter) String() string {
	if f < StatusAll || f > StatusDone {
		return "all"
	}
	return statusFilterNames[f]
}

// Next cycles all -> active -> done -> all.
func (f StatusFilter) Next() StatusFilter { return (f + 1) % 3 }

func (f StatusFilter) Match(it model.Item) bool {
	switch f {
	case StatusActive:
		return it.Status == model.StatusActive
	case StatusDone:
		return it.Status == model.StatusDone
	}
	return true
}

func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusAll, nil
	}
	for i, n := range statusFilterNames {
		if n == s {
			return StatusFilter(i), nil
		}
	}
	return StatusAll, fmt.Errorf("unknown status filter %q (want all, active or done)", s)
}

// Criteria is one set of pipeline inputs.
type Criteria struct {
	Kind   KindFilter
	Status StatusFilter
	Search string
}

// Counts tallies a collection by kind and by status.
type Counts struct {
	Lost, Found  int
	Active, Done int
}

func Tally(items []model.Item) Counts {
	var c Counts
	for _, it := range items {
		if it.Kind == model.KindFound {
			c.Found++
		} else {
			c.Lost++
		}
		if it.Done() {
			c.Done++
		} else {
			c.Active++
		}
	}
	return c
}

// MatchSearch is a case-insensitive substring match on title or location.
// An empty search matches everything.
func MatchSearch(it model.Item, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.Location), q)
}

// Apply runs the type, status and search filters in that order and returns
// the surviving items in their original order. The input is not modified.
func Apply(items []model.Item, c Criteria) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if !c.Kind.Match(it) {
			continue
		}
		if !c.Status.Match(it) {
			continue
		}
		if !MatchSearch(it, c.Search) {
			continue
		}
		out = append(out, it)
	}
	return out
}
