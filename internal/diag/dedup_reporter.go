package diag

import "fixit/internal/source"

// DedupReporter drops a diagnostic when the same rule already reported the
// same message on the same span. Visitors subscribed to nested kinds can
// reach one node twice.
type DedupReporter struct {
	next    Reporter
	seen    map[dedupKey]struct{}
	Dropped int
}

type dedupKey struct {
	code Code
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	key := dedupKey{code: d.Code, span: d.Primary, msg: d.Message}
	if _, dup := r.seen[key]; dup {
		r.Dropped++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}
