package similar

import (
	"context"

	"github.com/five82/shopper/internal/backend"
)

// Phase is the overlay state.
type Phase int

const (
	PhaseUnopened Phase = iota
	PhaseUnsearched
	PhaseSearching
	PhaseResults
	PhaseEmpty
)

func (p Phase) String() string {
	switch p {
	case PhaseUnsearched:
		return "unsearched"
	case PhaseSearching:
		return "searching"
	case PhaseResults:
		return "results"
	case PhaseEmpty:
		return "empty"
	default:
		return "unopened"
	}
}

// Lookup is the similar-items overlay for one product card. Results are
// scoped to a single open; Close discards them. Not safe for concurrent use.
type Lookup struct {
	strategies Set

	phase    Phase
	product  backend.DetectedProduct
	index    int
	selected Kind
	searched Kind
	items    []backend.SimilarItem
	lastErr  error
	seq      int
}

// Request is one in-flight search, tagged so stale completions can be
// recognised.
type Request struct {
	Seq      int
	Strategy Strategy
	Product  backend.DetectedProduct
}

// Run performs the search.
func (r Request) Run(ctx context.Context) ([]backend.SimilarItem, error) {
	return r.Strategy.Find(ctx, r.Product)
}

// NewLookup returns a closed overlay offering strategies. The first strategy
// is preselected when the overlay opens.
func NewLookup(strategies Set) *Lookup {
	return &Lookup{strategies: strategies}
}

// Phase reports the overlay state.
func (l *Lookup) Phase() Phase { return l.phase }

// Product returns the product the overlay was opened for.
func (l *Lookup) Product() backend.DetectedProduct { return l.product }

// Index returns the card position of Product.
func (l *Lookup) Index() int { return l.index }

// Selected returns the strategy highlighted in the chooser.
func (l *Lookup) Selected() Kind { return l.selected }

// Strategies returns the offered strategies in display order.
func (l *Lookup) Strategies() Set { return l.strategies }

// LastError returns the error of the latest search, if it failed.
func (l *Lookup) LastError() error { return l.lastErr }

// IsOpen reports whether the overlay is showing.
func (l *Lookup) IsOpen() bool { return l.phase != PhaseUnopened }

// Items returns a copy of the current results.
func (l *Lookup) Items() []backend.SimilarItem {
	out := make([]backend.SimilarItem, len(l.items))
	copy(out, l.items)
	return out
}

// Searched returns the strategy that produced the current results.
func (l *Lookup) Searched() (Strategy, bool) {
	return l.strategies.Get(l.searched)
}

// Open shows the overlay for product at index. Reopening starts fresh.
func (l *Lookup) Open(product backend.DetectedProduct, index int) {
	l.reset()
	l.seq++
	l.phase = PhaseUnsearched
	l.product = product
	l.index = index
	if len(l.strategies) > 0 {
		l.selected = l.strategies[0].Kind()
	}
}

// Select picks a strategy before the first search. It has no effect once a
// search has been started.
func (l *Lookup) Select(k Kind) bool {
	if l.phase != PhaseUnsearched {
		return false
	}
	if _, ok := l.strategies.Get(k); !ok {
		return false
	}
	l.selected = k
	return true
}

// Search starts a lookup with strategy k. Prior results are dropped before
// the request is issued, so two strategies never share a result list.
func (l *Lookup) Search(k Kind) (Request, bool) {
	if l.phase == PhaseUnopened || l.phase == PhaseSearching {
		return Request{}, false
	}
	st, ok := l.strategies.Get(k)
	if !ok {
		return Request{}, false
	}
	l.seq++
	l.selected = k
	l.searched = k
	l.items = nil
	l.lastErr = nil
	l.phase = PhaseSearching
	return Request{Seq: l.seq, Strategy: st, Product: l.product}, true
}

// Complete records the outcome of request seq. Completions for a closed
// overlay or a superseded request are ignored and report false. An error
// leaves the result list empty.
func (l *Lookup) Complete(seq int, items []backend.SimilarItem, err error) bool {
	if l.phase != PhaseSearching || seq != l.seq {
		return false
	}
	if err != nil {
		l.lastErr = err
		items = nil
	}
	if len(items) == 0 {
		l.items = nil
		l.phase = PhaseEmpty
		return true
	}
	l.items = append([]backend.SimilarItem(nil), items...)
	l.phase = PhaseResults
	return true
}

// Close hides the overlay and discards its results.
func (l *Lookup) Close() {
	l.reset()
	l.seq++
}

func (l *Lookup) reset() {
	l.phase = PhaseUnopened
	l.product = backend.DetectedProduct{}
	l.index = 0
	l.selected = KindNone
	l.searched = KindNone
	l.items = nil
	l.lastErr = nil
}
