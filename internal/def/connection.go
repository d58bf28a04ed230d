package def

// InternalConnection wires a source component's variable to a destination
// component's parameter. Both endpoints are addressed relative to the
// composite the connection is declared on; either may resolve through
// re-exports to leaves nested several levels deeper.
type InternalConnection struct {
	SrcPath Path
	SrcName string
	DstPath Path
	DstName string
	// IgnoreUnits suppresses the unit-equality check between the endpoints.
	IgnoreUnits bool
	// Backup names an external parameter in the owning composite's table to
	// fall back to when the source has no value at a given time.
	Backup string
	// Offset shifts destination reads back in time by this many positions.
	Offset int
}

// ExternalConnection wires a destination parameter to a value held in the
// owning composite's external-parameter table.
type ExternalConnection struct {
	DstPath   Path
	DstName   string
	ParamName string
}
