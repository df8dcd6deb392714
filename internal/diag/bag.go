package diag

// Bag is an ordered diagnostic accumulator owned by the Module Driver.
// The semantic core itself never recovers from an error within one top-level
// declaration (spec.md §7): a Bag exists one level up, so the driver can
// report one Diagnostic per failed declaration and still process the rest of
// the translation unit (spec.md §5's per-declaration ordering guarantee says
// nothing about continuing after a failure, but a usable host needs to see
// more than the first mistake in a file).
type Bag struct {
	diagnostics []*Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends d, ignoring a nil Diagnostic.
func (b *Bag) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	b.diagnostics = append(b.diagnostics, d)
}

// HasErrors reports whether any accumulated Diagnostic has SeverityError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// All returns every accumulated Diagnostic in insertion order.
func (b *Bag) All() []*Diagnostic {
	return b.diagnostics
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int {
	return len(b.diagnostics)
}
