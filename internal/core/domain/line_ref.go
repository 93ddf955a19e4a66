package domain

import "sync/atomic"

// pendingCounter hands out process-local tokens for lines staged in an edit
// session but not yet persisted. A monotonic counter avoids the collision risk
// of clock-derived tokens under fast successive calls.
var pendingCounter atomic.Int64

// LineRef identifies an entry line either by its persisted id or by a local
// pending token while the line only exists in a staged (serialized) line-set.
type LineRef struct {
	id      int64
	pending bool
}

// PersistedLineRef references a stored line by database id.
func PersistedLineRef(id int64) LineRef {
	return LineRef{id: id}
}

// PendingLineRef references a staged, not-yet-persisted line by local token.
func PendingLineRef(token int64) LineRef {
	return LineRef{id: token, pending: true}
}

// NewPendingLineRef allocates a fresh pending reference.
func NewPendingLineRef() LineRef {
	return PendingLineRef(pendingCounter.Add(1))
}

// LineRefFromSerial rebuilds a ref from its wire value: negative values are
// pending tokens, positive values persisted ids.
func LineRefFromSerial(v int64) LineRef {
	if v < 0 {
		return PendingLineRef(-v)
	}
	return PersistedLineRef(v)
}

// IsPending reports whether the ref points at an unsaved line.
func (r LineRef) IsPending() bool { return r.pending }

// PersistedID returns the database id, or 0 for a pending ref.
func (r LineRef) PersistedID() int64 {
	if r.pending {
		return 0
	}
	return r.id
}

// Serial returns the wire value of the ref. Pending tokens serialize as
// negative integers so the staged-line text format stays compatible.
func (r LineRef) Serial() int64 {
	if r.pending {
		return -r.id
	}
	return r.id
}

// Equal reports whether two refs designate the same line.
func (r LineRef) Equal(o LineRef) bool {
	return r.pending == o.pending && r.id == o.id
}
