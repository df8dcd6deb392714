package scope

import "yo/internal/types"

// Binding is the (type, opaque-value) pair stored per identifier. Value is
// whatever the host attaches to the name — for the Call Resolver's direct-
// call classification (spec.md §4.F item 1) it is an Emitter value handle;
// for an ordinary local it may be nil until codegen assigns one.
type Binding struct {
	Type  types.TypeID
	Value any
}

// Env is the pair of scopes an elaboration pass threads through a
// compilation: Values maps identifiers to (type, binding) pairs, and Nominal
// maps nominal-type names to their resolved TypeID (spec.md §4.C: "The scope
// also holds the nominal-type table used by the resolver"). Both share the
// same Scope[V] rollback mechanism but are independent instances with
// independent markers.
type Env struct {
	Values  *Scope[Binding]
	Nominal *Scope[types.TypeID]
}

// NewEnv returns an empty Env.
func NewEnv() *Env {
	return &Env{Values: New[Binding](), Nominal: New[types.TypeID]()}
}

// Insert registers name -> (ty, binding) in the value scope.
func (e *Env) Insert(name string, ty types.TypeID, binding any) {
	e.Values.Insert(name, Binding{Type: ty, Value: binding})
}

// Remove un-shadows the previous value binding for name.
func (e *Env) Remove(name string) { e.Values.Remove(name) }

// Contains reports whether name has a visible value binding.
func (e *Env) Contains(name string) bool { return e.Values.Contains(name) }

// GetType returns the currently visible type of name.
func (e *Env) GetType(name string) (types.TypeID, bool) {
	b, ok := e.Values.Get(name)
	if !ok {
		return types.NoTypeID, false
	}
	return b.Type, true
}

// GetBinding returns the currently visible binding value of name.
func (e *Env) GetBinding(name string) (any, bool) {
	b, ok := e.Values.Get(name)
	if !ok {
		return nil, false
	}
	return b.Value, true
}

// GetMarker returns the current marker of the value scope (the common case:
// entering/exiting a block).
func (e *Env) GetMarker() Marker { return e.Values.Marker() }

// EntriesSinceMarker returns the value bindings inserted after m.
func (e *Env) EntriesSinceMarker(m Marker) []NamedValue[Binding] {
	return e.Values.EntriesSinceMarker(m)
}

// RemoveAllSinceMarker rolls back the value scope to m.
func (e *Env) RemoveAllSinceMarker(m Marker) { e.Values.RemoveAllSinceMarker(m) }

// InsertNominal registers a resolved type under a nominal name (e.g. a
// deduced template parameter, or a typealias), in the nominal-type table the
// Type Descriptor Resolver consults.
func (e *Env) InsertNominal(name string, ty types.TypeID) { e.Nominal.Insert(name, ty) }

// LookupNominal resolves a nominal-type name against the nominal-type table.
func (e *Env) LookupNominal(name string) (types.TypeID, bool) { return e.Nominal.Get(name) }
