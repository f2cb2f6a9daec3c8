package store

// Filter is a declarative record predicate. Backends translate it into their
// own query language.
type Filter interface {
	isFilter()
}

// Equals matches records whose field equals Value as text.
type Equals struct {
	Field string
	Value string
}

// IsTrue matches records whose boolean field is set.
type IsTrue struct {
	Field string
}

// Contains matches records whose field contains Text, ignoring case.
type Contains struct {
	Field string
	Text  string
}

func (Equals) isFilter()   {}
func (IsTrue) isFilter()   {}
func (Contains) isFilter() {}
