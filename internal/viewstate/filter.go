// Package viewstate holds the mutable filter and visibility state of the
// filterable views. State objects are owned by one runtime and mutated only
// from its event loop, so they carry no locks.
package viewstate

// Filter is a set of on/off flags over a fixed, ordered vocabulary. With no
// flag on, everything passes.
type Filter[C comparable] struct {
	vocab []C
	flags map[C]bool
}

// NewFilter creates a filter over vocab with every flag off.
func NewFilter[C comparable](vocab []C) *Filter[C] {
	f := &Filter[C]{
		vocab: append([]C(nil), vocab...),
		flags: make(map[C]bool, len(vocab)),
	}
	for _, c := range vocab {
		f.flags[c] = false
	}
	return f
}

// Vocabulary returns the categories in display order.
func (f *Filter[C]) Vocabulary() []C {
	return f.vocab
}

// Active reports the flag for c.
func (f *Filter[C]) Active(c C) bool {
	return f.flags[c]
}

// Toggle flips the flag for c and reports whether c is in the vocabulary.
// Other flags are left alone.
func (f *Filter[C]) Toggle(c C) bool {
	if _, ok := f.flags[c]; !ok {
		return false
	}
	f.flags[c] = !f.flags[c]
	return true
}

// Set forces the flag for c.
func (f *Filter[C]) Set(c C, on bool) bool {
	if _, ok := f.flags[c]; !ok {
		return false
	}
	f.flags[c] = on
	return true
}

// Any reports whether at least one flag is on.
func (f *Filter[C]) Any() bool {
	for _, on := range f.flags {
		if on {
			return true
		}
	}
	return false
}

// Selected returns the categories whose flag is on, in vocabulary order.
func (f *Filter[C]) Selected() []C {
	var out []C
	for _, c := range f.vocab {
		if f.flags[c] {
			out = append(out, c)
		}
	}
	return out
}

// Pass applies the filter rule to an item's categories: everything passes
// while no flag is on; otherwise the item needs at least one active
// category, so an item without categories is rejected.
func (f *Filter[C]) Pass(categories ...C) bool {
	if !f.Any() {
		return true
	}
	for _, c := range categories {
		if f.flags[c] {
			return true
		}
	}
	return false
}

// IDSet is a set of item ids.
type IDSet map[string]struct{}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
