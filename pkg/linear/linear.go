// Package linear turns the per-line sign interpretation DAG into total
// reading orders.
//
// Two traversals are offered. [DefaultOrder] returns the editorially curated
// baseline: one interpretation per sign, in the order the signs were given.
// [Walk] and [AllOrders] enumerate every alternate order the graph admits -
// each maximal path through the next-interpretation DAG from a source
// (no incoming reference) to a sink (no outgoing reference) is one order.
//
// Enumeration is deterministic: sources are visited ascending by ID and every
// branch follows the lowest-ID next reference first. It is lazy (Walk emits
// orders as they are found and can be stopped early) and restartable (calling
// Walk again replays the same sequence). The model is immutable, so all
// functions here are safe for concurrent use across lines.
package linear

import (
	"context"
	"fmt"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
)

// DefaultMaxOrders is the enumeration cap applied when Options.MaxOrders is
// zero. Branch-heavy lines can admit combinatorially many orders; the cap
// turns runaway enumeration into a reported [ErrTooManyOrderings] condition.
const DefaultMaxOrders = 1000

// Order is one total reading order of a line's interpretations.
type Order []*edition.SignInterpretation

// IDs returns the interpretation IDs of the order, in order.
func (o Order) IDs() []uint32 {
	ids := make([]uint32, len(o))
	for i, si := range o {
		ids[i] = si.ID()
	}
	return ids
}

// Options configures order enumeration.
type Options struct {
	// MaxOrders caps AllOrders and CountOrders. Zero means DefaultMaxOrders.
	MaxOrders int
}

func (o Options) maxOrders() int {
	if o.MaxOrders <= 0 {
		return DefaultMaxOrders
	}
	return o.MaxOrders
}

// DefaultOrder returns the line's default reading order: the primary (first
// listed) interpretation of each sign, in the sign order given by the
// edition. A line with no signs yields an empty order.
func DefaultOrder(line *edition.Line) Order {
	signs := line.Signs()
	order := make(Order, len(signs))
	for i, s := range signs {
		order[i] = s.Primary()
	}
	return order
}

// Walk enumerates every maximal source→sink path through the line's
// next-interpretation DAG, calling fn with each completed order. The slice
// passed to fn is only valid for the duration of the call; fn must copy it
// to retain it. fn returns false to stop the enumeration early, which is not
// an error.
//
// The context is checked between path expansions; cancellation aborts the
// walk with an error matching [ErrCancelled].
func Walk(ctx context.Context, line *edition.Line, fn func(Order) bool) error {
	w := walker{ctx: ctx, line: line, fn: fn}
	for _, src := range sources(line) {
		if err := w.visit(src); err != nil {
			return err
		}
		if w.stopped {
			return nil
		}
	}
	return nil
}

type walker struct {
	ctx     context.Context
	line    *edition.Line
	fn      func(Order) bool
	path    Order
	stopped bool
}

func (w *walker) visit(si *edition.SignInterpretation) error {
	if err := w.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	w.path = append(w.path, si)
	defer func() { w.path = w.path[:len(w.path)-1] }()

	next := w.line.Next(si)
	if len(next) == 0 {
		// Sink: the current path is one complete order.
		if !w.fn(w.path) {
			w.stopped = true
			return nil
		}
		return nil
	}

	// NextIDs are stored sorted ascending, so this follows the lowest-ID
	// branch first.
	for _, n := range next {
		if err := w.visit(n); err != nil {
			return err
		}
		if w.stopped {
			return nil
		}
	}
	return nil
}

// sources returns the line's interpretations with no incoming
// next-interpretation reference, ascending by ID within each sign and in
// sign order across the line.
func sources(line *edition.Line) []*edition.SignInterpretation {
	indeg := make(map[uint32]int)
	for _, s := range line.Signs() {
		for _, si := range s.Interpretations() {
			for _, ref := range si.NextIDs() {
				indeg[ref]++
			}
		}
	}

	var srcs []*edition.SignInterpretation
	for _, s := range line.Signs() {
		for _, si := range s.Interpretations() {
			if indeg[si.ID()] == 0 {
				srcs = append(srcs, si)
			}
		}
	}
	return srcs
}

// AllOrders collects every order [Walk] would emit, up to the configured cap.
// When the DAG admits more orders than the cap, the capped partial result is
// returned together with a [*TooManyOrderingsError] reporting how many were
// enumerated; the caller decides whether that is fatal. A line with no signs
// yields no orders and no error.
func AllOrders(ctx context.Context, line *edition.Line, opts Options) ([]Order, error) {
	max := opts.maxOrders()
	var orders []Order
	exceeded := false

	err := Walk(ctx, line, func(o Order) bool {
		if len(orders) == max {
			exceeded = true
			return false
		}
		cp := make(Order, len(o))
		copy(cp, o)
		orders = append(orders, cp)
		return true
	})
	if err != nil {
		return nil, err
	}
	if exceeded {
		return orders, &TooManyOrderingsError{LineID: line.ID(), Enumerated: len(orders), Limit: max}
	}
	return orders, nil
}

// CountOrders counts the orders [Walk] would emit without materializing them,
// subject to the same cap and error semantics as [AllOrders].
func CountOrders(ctx context.Context, line *edition.Line, opts Options) (int, error) {
	max := opts.maxOrders()
	count := 0
	exceeded := false

	err := Walk(ctx, line, func(Order) bool {
		if count == max {
			exceeded = true
			return false
		}
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	if exceeded {
		return count, &TooManyOrderingsError{LineID: line.ID(), Enumerated: count, Limit: max}
	}
	return count, nil
}
