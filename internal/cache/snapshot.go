package cache

import (
	"yo/internal/symbols"
	"yo/internal/types"
)

// FromCallables projects a slice of resolved callables into a serializable
// Snapshot, resolving every TypeID to its printable name up front — the same
// "flatten pointer-heavy in-memory state into a plain-value payload before
// encoding" step surge/internal/driver/dcache.go's moduleToDiskPayload
// performs for ModuleMeta.
func FromCallables(module string, callables []*symbols.ResolvedCallable, interner *types.Interner) *Snapshot {
	entries := make([]CallableEntry, len(callables))
	for i, c := range callables {
		paramNames := make([]string, len(c.ParamTypes))
		for j, p := range c.ParamTypes {
			paramNames[j] = interner.Str(p)
		}
		entries[i] = CallableEntry{
			Canonical:      c.Canonical,
			Mangled:        c.Mangled,
			OwnerType:      c.OwnerType,
			ParamTypeNames: paramNames,
			RetTypeName:    interner.Str(c.RetType),
			Template:       c.IsTemplate(),
		}
	}
	return &Snapshot{Module: module, Callables: entries}
}
