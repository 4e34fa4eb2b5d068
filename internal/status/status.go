// Package status maps server sync statuses onto the display attributes of a
// sync control: label text, button text, affordance classes and whether the
// control accepts input.
package status

import (
	"fmt"
	"sort"
)

// Status is a sync status as reported by the server.
type Status string

const (
	NotSynced           Status = "not_synced"
	Syncing             Status = "syncing"
	Synced              Status = "synced"
	Error               Status = "error"
	MemoryError         Status = "memory_error"
	InvalidGeojsonError Status = "invalid_geojson_error"
)

// Transient reports whether the status is expected to change without
// further user action.
func (s Status) Transient() bool {
	return s == Syncing
}

// Failed reports whether the status is one of the failure variants.
func (s Status) Failed() bool {
	switch s {
	case Error, MemoryError, InvalidGeojsonError:
		return true
	}
	return false
}

// Affordance classes applied to the sync control.
const (
	ClassDisabled = "disabled"
	ClassSuccess  = "btn-success"
	ClassDanger   = "btn-danger"
	ClassSynced   = "synced"
)

// UnknownStatusError is returned when a status is outside a catalog's enumeration.
type UnknownStatusError struct {
	Status Status
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown sync status %q", string(e.Status))
}

// DisplayAttributes describes how a sync control renders one status.
type DisplayAttributes struct {
	StatusLabel         string
	ButtonLabel         string
	AddClasses          []string
	RemoveClasses       []string
	InteractionDisabled bool
	// Linked is true when the resource name should be rendered as a link.
	Linked bool
}

// Disabled returns a copy of the attributes with interaction disabled and the
// disabled class moved from the remove set to the add set.
func (a DisplayAttributes) Disabled() DisplayAttributes {
	out := a
	out.InteractionDisabled = true
	out.AddClasses = withClass(a.AddClasses, ClassDisabled)
	out.RemoveClasses = withoutClass(a.RemoveClasses, ClassDisabled)
	return out
}

type entry struct {
	statusLabel string
	buttonLabel string
	classes     []string
	disabled    bool
}

// table holds every status either catalog knows about. Toggling a failed
// sync starts a new one, so failure buttons read "Retry".
var table = map[Status]entry{
	NotSynced:           {statusLabel: "Not Synced", buttonLabel: "Sync", classes: []string{ClassSuccess}},
	Syncing:             {statusLabel: "Syncing", buttonLabel: "Syncing", classes: []string{ClassDisabled}, disabled: true},
	Synced:              {statusLabel: "Synced", buttonLabel: "Unsync", classes: []string{ClassDanger, ClassSynced}},
	Error:               {statusLabel: "Error Syncing", buttonLabel: "Retry", classes: []string{ClassDanger}},
	MemoryError:         {statusLabel: "GeoJSON Too Large", buttonLabel: "Retry", classes: []string{ClassDanger}},
	InvalidGeojsonError: {statusLabel: "Invalid GeoJSON", buttonLabel: "Retry", classes: []string{ClassDanger}},
}

// Catalog is a total mapping from a fixed set of statuses to their display attributes.
// A Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	statuses []Status
	attrs    map[Status]DisplayAttributes
}

// NewCatalog builds a catalog over the given statuses. The remove set of each
// status is the union of the add sets of all other statuses, minus its own.
func NewCatalog(statuses ...Status) (*Catalog, error) {
	if len(statuses) == 0 {
		return nil, fmt.Errorf("catalog needs at least one status")
	}

	all := make(map[string]struct{})
	for _, s := range statuses {
		e, ok := table[s]
		if !ok {
			return nil, &UnknownStatusError{Status: s}
		}
		for _, c := range e.classes {
			all[c] = struct{}{}
		}
	}

	c := &Catalog{
		statuses: append([]Status(nil), statuses...),
		attrs:    make(map[Status]DisplayAttributes, len(statuses)),
	}
	for _, s := range statuses {
		e := table[s]
		own := make(map[string]struct{}, len(e.classes))
		for _, cls := range e.classes {
			own[cls] = struct{}{}
		}
		var remove []string
		for cls := range all {
			if _, ok := own[cls]; !ok {
				remove = append(remove, cls)
			}
		}
		sort.Strings(remove)
		add := append([]string(nil), e.classes...)
		sort.Strings(add)

		c.attrs[s] = DisplayAttributes{
			StatusLabel:         e.statusLabel,
			ButtonLabel:         e.buttonLabel,
			AddClasses:          add,
			RemoveClasses:       remove,
			InteractionDisabled: e.disabled,
			Linked:              s == Synced,
		}
	}
	return c, nil
}

func mustCatalog(statuses ...Status) *Catalog {
	c, err := NewCatalog(statuses...)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	repoCatalog       = mustCatalog(NotSynced, Syncing, Synced, Error)
	featureSetCatalog = mustCatalog(NotSynced, Syncing, Synced, Error, MemoryError, InvalidGeojsonError)
)

// RepoCatalog returns the catalog for repository resources.
func RepoCatalog() *Catalog { return repoCatalog }

// FeatureSetCatalog returns the catalog for feature set resources, which adds
// the memory and invalid GeoJSON failure statuses.
func FeatureSetCatalog() *Catalog { return featureSetCatalog }

// Lookup returns the display attributes for s, or an *UnknownStatusError.
func (c *Catalog) Lookup(s Status) (DisplayAttributes, error) {
	a, ok := c.attrs[s]
	if !ok {
		return DisplayAttributes{}, &UnknownStatusError{Status: s}
	}
	return copyAttrs(a), nil
}

// LookupOrFallback behaves like Lookup but returns the attributes of Error
// together with the lookup error when s is unknown.
func (c *Catalog) LookupOrFallback(s Status) (DisplayAttributes, error) {
	a, err := c.Lookup(s)
	if err == nil {
		return a, nil
	}
	return copyAttrs(c.attrs[Error]), err
}

// Contains reports whether s belongs to the catalog.
func (c *Catalog) Contains(s Status) bool {
	_, ok := c.attrs[s]
	return ok
}

// Statuses returns the catalog's statuses in declaration order.
func (c *Catalog) Statuses() []Status {
	return append([]Status(nil), c.statuses...)
}

// Parse validates a raw wire value against the catalog.
func (c *Catalog) Parse(raw string) (Status, error) {
	s := Status(raw)
	if !c.Contains(s) {
		return "", &UnknownStatusError{Status: s}
	}
	return s, nil
}

func copyAttrs(a DisplayAttributes) DisplayAttributes {
	a.AddClasses = append([]string(nil), a.AddClasses...)
	a.RemoveClasses = append([]string(nil), a.RemoveClasses...)
	return a
}

func withClass(classes []string, cls string) []string {
	out := withoutClass(classes, cls)
	out = append(out, cls)
	sort.Strings(out)
	return out
}

func withoutClass(classes []string, cls string) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != cls {
			out = append(out, c)
		}
	}
	return out
}
