package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for findings that never affect success.
	SevWarning Severity = iota
	// SevError is for ordinary lexical/syntax/semantic findings.
	SevError
	// SevFatal is reserved for conditions that invalidate the rest of the
	// pipeline: missing/unreadable file, unexpected internal fault.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevFatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// Phase identifies which stage of the pipeline produced a diagnostic.
type Phase uint8

const (
	// PhaseLexical covers tokenization faults.
	PhaseLexical Phase = iota
	// PhaseSyntax covers grammar faults.
	PhaseSyntax
	// PhaseSemantic covers static analysis findings.
	PhaseSemantic
	// PhaseIO covers file access faults at the orchestrator boundary.
	PhaseIO
	// PhaseInternal covers unexpected runtime faults.
	PhaseInternal
)

func (p Phase) String() string {
	switch p {
	case PhaseLexical:
		return "Lexical"
	case PhaseSyntax:
		return "Syntax"
	case PhaseSemantic:
		return "Semantic"
	case PhaseIO:
		return "IO"
	case PhaseInternal:
		return "Internal"
	}
	return "Unknown"
}
