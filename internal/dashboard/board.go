package dashboard

import (
	"context"
	"sync"

	"github.com/CivicIntel/CI-Backend/internal/reports"
)

// StatusWriter persists a status transition. *Client satisfies it.
type StatusWriter interface {
	UpdateStatus(ctx context.Context, id string, status reports.Status) error
}

// FilterAll is the filter value that passes every report.
const FilterAll = "all"

// Stats are the per-status counts shown in the sidebar.
type Stats struct {
	Total         int
	Pending       int
	Investigating int
	Closed        int
}

// Board holds the operator's local view of the report feed. Status
// transitions apply to this view optimistically, ahead of the server's
// acknowledgement, and revert if the write fails.
type Board struct {
	mu     sync.Mutex
	rows   []reports.Report
	writer StatusWriter
}

func NewBoard(rows []reports.Report, writer StatusWriter) *Board {
	return &Board{rows: rows, writer: writer}
}

// Reports returns a snapshot of the current local view.
func (b *Board) Reports() []reports.Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]reports.Report, len(b.rows))
	copy(out, b.rows)
	return out
}

// Filter returns the reports whose status matches filter, preserving the
// feed's newest-first order. FilterAll passes everything. Purely a local
// predicate; no fetch happens here.
func (b *Board) Filter(filter string) []reports.Report {
	b.mu.Lock()
	defer b.mu.Unlock()

	if filter == FilterAll {
		out := make([]reports.Report, len(b.rows))
		copy(out, b.rows)
		return out
	}

	var out []reports.Report
	for _, r := range b.rows {
		if string(r.Status) == filter {
			out = append(out, r)
		}
	}
	return out
}

func (b *Board) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Stats{Total: len(b.rows)}
	for _, r := range b.rows {
		switch r.Status {
		case reports.StatusPending:
			s.Pending++
		case reports.StatusInvestigating:
			s.Investigating++
		case reports.StatusClosed:
			s.Closed++
		}
	}
	return s
}

// SetStatus applies the transition to the local view immediately, then
// persists it in the background. The returned channel delivers the write's
// outcome; fire-and-forget callers simply ignore it. If the write fails the
// local row reverts to its previous status (reconciliation), so the view
// only stays ahead of the store while the write is in flight.
func (b *Board) SetStatus(ctx context.Context, id string, status reports.Status) <-chan error {
	done := make(chan error, 1)

	b.mu.Lock()
	prev, found := b.apply(id, status)
	b.mu.Unlock()

	if !found {
		done <- nil
		return done
	}

	go func() {
		err := b.writer.UpdateStatus(ctx, id, status)
		if err != nil {
			b.mu.Lock()
			// Revert only if nobody else has transitioned the row since.
			if cur, ok := b.current(id); ok && cur == status {
				b.apply(id, prev)
			}
			b.mu.Unlock()
		}
		done <- err
	}()

	return done
}

// apply mutates the local row and reports its previous status. Caller holds mu.
func (b *Board) apply(id string, status reports.Status) (reports.Status, bool) {
	for i := range b.rows {
		if b.rows[i].ID == id {
			prev := b.rows[i].Status
			b.rows[i].Status = status
			return prev, true
		}
	}
	return "", false
}

// current reads the local row's status. Caller holds mu.
func (b *Board) current(id string) (reports.Status, bool) {
	for i := range b.rows {
		if b.rows[i].ID == id {
			return b.rows[i].Status, true
		}
	}
	return "", false
}
