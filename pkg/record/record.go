// Package record provides the payload used by the object benchmark: a small
// record shared through explicitly reference-counted handles.
//
// A Strong handle keeps its record alive. A Weak handle does not; once the
// last Strong handle is released the record is dropped and every Weak handle
// to it resolves as expired. Expiry is driven by the reference count alone and
// does not depend on when the garbage collector runs.
//
// Handles are not safe for concurrent use.
package record

// Record is the shared payload. Title and description may be changed in
// place; the key is fixed when the record is created.
type Record struct {
	title       string
	description string
	key         uint64
}

func (r *Record) Title() string       { return r.title }
func (r *Record) Description() string { return r.description }
func (r *Record) Key() uint64         { return r.key }

func (r *Record) SetTitle(title string)             { r.title = title }
func (r *Record) SetDescription(description string) { r.description = description }

// control is the block shared by every handle to one record.
type control struct {
	rec    *Record
	strong int
}

// Strong is an owning handle.
type Strong struct {
	c        *control
	released bool
}

// New creates a record owned by the returned handle.
func New(title, description string, key uint64) *Strong {
	return &Strong{c: &control{
		rec:    &Record{title: title, description: description, key: key},
		strong: 1,
	}}
}

// Get returns the record, or nil if this handle has been released.
func (s *Strong) Get() *Record {
	if s.released {
		return nil
	}
	return s.c.rec
}

// Clone returns a new owning handle to the same record.
// Cloning a released handle yields another released handle.
func (s *Strong) Clone() *Strong {
	if s.released {
		return &Strong{c: s.c, released: true}
	}
	s.c.strong++
	return &Strong{c: s.c}
}

// Release gives up this handle's ownership. Releasing twice is a no-op.
// When the last owner lets go the record is dropped.
func (s *Strong) Release() {
	if s.released {
		return
	}
	s.released = true
	s.c.strong--
	if s.c.strong == 0 {
		s.c.rec = nil
	}
}

// UseCount returns the number of live owning handles to the record.
func (s *Strong) UseCount() int {
	return s.c.strong
}

// Weak returns a non-owning handle to the record.
func (s *Strong) Weak() Weak {
	return Weak{c: s.c}
}

// Weak is a non-owning handle. The zero value is always expired.
type Weak struct {
	c *control
}

// Resolve returns the record if some Strong handle still owns it.
// ok is false once the record has been dropped.
func (w Weak) Resolve() (rec *Record, ok bool) {
	if w.c == nil || w.c.rec == nil {
		return nil, false
	}
	return w.c.rec, true
}

// Expired reports whether the record has been dropped.
func (w Weak) Expired() bool {
	return w.c == nil || w.c.rec == nil
}
