package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	CodeOK       ErrorCode = "OK"
	CodeUnknown  ErrorCode = "COMMON_000"
	CodeInternal ErrorCode = "COMMON_001"
	CodeTimeout  ErrorCode = "COMMON_002"
	CodeCanceled ErrorCode = "COMMON_003"
)

// Input errors.  Both are fatal: they are detected before any conversion
// work starts.
const (
	// CodeInputFormat marks a malformed or unreadable molecule table or
	// receptor file.
	CodeInputFormat ErrorCode = "INPUT_001"

	// CodeDuplicateName marks two input rows that collide on the same
	// sanitized molecule name.  Collisions are auto-suffixed by the loader;
	// this code is reserved for callers that opt into strict rejection.
	CodeDuplicateName ErrorCode = "INPUT_002"
)

// External tool errors.
const (
	// CodeToolNotFound marks an unresolvable Converter or Docking Engine
	// binary.  Fatal: detected at startup, before any molecule is processed.
	CodeToolNotFound ErrorCode = "TOOL_001"

	// CodeConversionFailure marks a failed ligand conversion sub-step.
	// Per-molecule: the molecule is excluded from docking, the run continues.
	CodeConversionFailure ErrorCode = "CONV_001"

	// CodeReceptorPreparation marks a failed receptor conversion.  Fatal:
	// no docking is possible without a prepared receptor.
	CodeReceptorPreparation ErrorCode = "CONV_002"

	// CodeDockingFailure marks a failed docking engine invocation.
	// Per-molecule, non-fatal.
	CodeDockingFailure ErrorCode = "DOCK_001"
)

// Geometry errors.
const (
	// CodeEmptyStructure marks a receptor with zero parseable atom
	// coordinates.  Fatal: no docking box can be computed.
	CodeEmptyStructure ErrorCode = "GEOM_001"
)
