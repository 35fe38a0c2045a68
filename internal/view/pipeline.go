package view

import (
	"sync"

	"github.com/idilsaglam/lostboard/internal/model"
)

// Pipeline keeps the source items and the committed criteria and recomputes
// the filtered result from scratch whenever either changes. Setters that do
// not change anything do not recompute.
type Pipeline struct {
	mu         sync.Mutex
	source     []model.Item
	criteria   Criteria
	result     []model.Item
	recomputes int
}

func NewPipeline(items []model.Item) *Pipeline {
	p := &Pipeline{}
	p.source = clone(items)
	p.result = Apply(p.source, p.criteria)
	return p
}

func (p *Pipeline) SetItems(items []model.Item) {
	p.update(func() bool {
		if equalItems(p.source, items) {
			return false
		}
		p.source = clone(items)
		return true
	})
}

func (p *Pipeline) SetKind(f KindFilter) {
	p.update(func() bool {
		if p.criteria.Kind == f {
			return false
		}
		p.criteria.Kind = f
		return true
	})
}

func (p *Pipeline) SetStatus(f StatusFilter) {
	p.update(func() bool {
		if p.criteria.Status == f {
			return false
		}
		p.criteria.Status = f
		return true
	})
}

// CommitSearch sets the effective search text. Callers feed it from a
// Debouncer rather than from raw keystrokes.
func (p *Pipeline) CommitSearch(s string) {
	p.update(func() bool {
		if p.criteria.Search == s {
			return false
		}
		p.criteria.Search = s
		return true
	})
}

func (p *Pipeline) Criteria() Criteria {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.criteria
}

// Result returns a copy of the current filtered items.
func (p *Pipeline) Result() []model.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clone(p.result)
}

// Recomputes counts recomputations since construction.
func (p *Pipeline) Recomputes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.recomputes
}

func (p *Pipeline) update(mutate func() bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !mutate() {
		return
	}
	p.result = Apply(p.source, p.criteria)
	p.recomputes++
}

func clone(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	return out
}

func equalItems(a, b []model.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
