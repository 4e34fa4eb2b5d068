package status

import (
	"sort"
	"strings"
)

// ClassSet is the class list of a bound control.
type ClassSet map[string]struct{}

// NewClassSet creates a ClassSet holding the given classes.
func NewClassSet(classes ...string) ClassSet {
	cs := make(ClassSet, len(classes))
	for _, c := range classes {
		cs[c] = struct{}{}
	}
	return cs
}

// Apply removes the attributes' remove set, then adds its add set.
func (cs ClassSet) Apply(a DisplayAttributes) {
	for _, c := range a.RemoveClasses {
		delete(cs, c)
	}
	for _, c := range a.AddClasses {
		cs[c] = struct{}{}
	}
}

// Has reports whether the class is present.
func (cs ClassSet) Has(class string) bool {
	_, ok := cs[class]
	return ok
}

// Slice returns the classes sorted.
func (cs ClassSet) Slice() []string {
	out := make([]string, 0, len(cs))
	for c := range cs {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same classes.
func (cs ClassSet) Equal(other ClassSet) bool {
	if len(cs) != len(other) {
		return false
	}
	for c := range cs {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// String renders the set like an HTML class attribute.
func (cs ClassSet) String() string {
	return strings.Join(cs.Slice(), " ")
}
