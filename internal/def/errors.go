package def

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Binding names one leaf-level datum slot: the path of the leaf component
// and the datum name within it.
type Binding struct {
	Path Path
	Name string
}

// String returns "path:name" (or just the name for a root-local binding).
func (b Binding) String() string {
	if len(b.Path) == 0 {
		return b.Name
	}
	return b.Path.String() + ":" + b.Name
}

// StructuralError reports a misuse of the definition API caught at
// declaration time: duplicate names in a namespace, a variable re-export
// with more than one target, a leaf without a component kind, and similar.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string { return "structural misuse: " + e.Msg }

func structuralf(format string, args ...any) *StructuralError {
	return &StructuralError{Msg: fmt.Sprintf(format, args...)}
}

// UnresolvableReferenceError reports a connection or re-export naming a
// component or datum that does not exist. Fatal; aborts the build.
type UnresolvableReferenceError struct {
	Path  Path
	Datum string
}

func (e *UnresolvableReferenceError) Error() string {
	return fmt.Sprintf("unresolvable reference: %s", Binding{Path: e.Path, Name: e.Datum})
}

// ConversionError reports a scalar parameter value that the declared numeric
// type cannot represent.
type ConversionError struct {
	Value cty.Value
	Want  cty.Type
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s: %v", e.Value.Type().FriendlyName(), e.Want.FriendlyName(), e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// IncompleteModelError reports every leaf parameter left without a bound
// source after connection expansion: no internal connection, no external
// connection, and no declared default.
type IncompleteModelError struct {
	Unbound []Binding
}

func (e *IncompleteModelError) Error() string {
	names := make([]string, len(e.Unbound))
	for i, b := range e.Unbound {
		names[i] = b.String()
	}
	return fmt.Sprintf("incomplete model: %d unbound parameter(s): %s", len(e.Unbound), strings.Join(names, ", "))
}

// UnitMismatchError reports an internal connection between datums with
// differing declared units, without the ignore-units flag set.
type UnitMismatchError struct {
	Src     Binding
	Dst     Binding
	SrcUnit string
	DstUnit string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("unit mismatch: %s [%s] -> %s [%s]", e.Src, e.SrcUnit, e.Dst, e.DstUnit)
}
