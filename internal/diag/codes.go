package diag

// Code is a stable diagnostic code. External tooling pattern-matches on the
// ID string independent of message text, so the mapping here is frozen.
type Code uint16

const (
	// UnknownCode is the catch-all for unclassified diagnostics.
	UnknownCode Code = 0

	// LexFault is the single lexical fault code; the lexing phase stops at
	// the first malformed or unterminated literal.
	LexFault Code = 1001

	// SynUnexpectedToken is the single syntax fault code; the parsing phase
	// aborts at the first unexpected token.
	SynUnexpectedToken Code = 2001

	// Semantic errors.
	SemUndefinedVariable     Code = 3001
	SemTypeMismatch          Code = 3002
	SemInvalidIdentifier     Code = 3003
	SemWrongArgumentCount    Code = 3004
	SemInvalidPropertyAccess Code = 3005
	SemInvalidIndexAccess    Code = 3006
	SemInternalError         Code = 3999
	SemUnclassified          Code = 3000

	// Semantic warnings.
	WarnUnusedVariable        Code = 4001
	WarnRedefinition          Code = 4002
	WarnImplicitConversion    Code = 4003
	WarnMixedArrayTypes       Code = 4007
	WarnUnknownOperator       Code = 4008
	WarnUnknownMethod         Code = 4009
	WarnUnvalidatedCrossRef   Code = 4010
	WarnUnclassified          Code = 4000

	// Orchestrator boundary.
	FileNotFound    Code = 5001
	FileReadFailure Code = 5002
	InternalFault   Code = 6001
)

// ID returns the frozen wire form of the code (LEX001, SEM004, WARN010, ...).
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return "E0000"
}

var codeIDs = map[Code]string{
	LexFault:                 "LEX001",
	SynUnexpectedToken:       "SYN001",
	SemUndefinedVariable:     "SEM001",
	SemTypeMismatch:          "SEM002",
	SemInvalidIdentifier:     "SEM003",
	SemWrongArgumentCount:    "SEM004",
	SemInvalidPropertyAccess: "SEM005",
	SemInvalidIndexAccess:    "SEM006",
	SemInternalError:         "SEM999",
	SemUnclassified:          "SEM000",
	WarnUnusedVariable:       "WARN001",
	WarnRedefinition:         "WARN002",
	WarnImplicitConversion:   "WARN003",
	WarnMixedArrayTypes:      "WARN007",
	WarnUnknownOperator:      "WARN008",
	WarnUnknownMethod:        "WARN009",
	WarnUnvalidatedCrossRef:  "WARN010",
	WarnUnclassified:         "WARN000",
	FileNotFound:             "FILE001",
	FileReadFailure:          "FILE002",
	InternalFault:            "INT001",
}

func (c Code) String() string { return c.ID() }

// SemErrorKind is the closed set of semantic error categories.
type SemErrorKind uint8

const (
	UndefinedVariable SemErrorKind = iota
	TypeMismatch
	InvalidIdentifier
	WrongArgumentCount
	InvalidPropertyAccess
	InvalidIndexAccess
	InternalError
)

// Code maps a semantic error kind to its stable code. Unrecognized kinds
// fall back to SEM000 rather than panicking.
func (k SemErrorKind) Code() Code {
	switch k {
	case UndefinedVariable:
		return SemUndefinedVariable
	case TypeMismatch:
		return SemTypeMismatch
	case InvalidIdentifier:
		return SemInvalidIdentifier
	case WrongArgumentCount:
		return SemWrongArgumentCount
	case InvalidPropertyAccess:
		return SemInvalidPropertyAccess
	case InvalidIndexAccess:
		return SemInvalidIndexAccess
	case InternalError:
		return SemInternalError
	default:
		return SemUnclassified
	}
}

// SemWarningKind is the closed set of semantic warning categories.
// VariableRedefinition, DuplicateSection and DuplicateKey share WARN002.
type SemWarningKind uint8

const (
	UnusedVariable SemWarningKind = iota
	VariableRedefinition
	DuplicateSection
	DuplicateKey
	ImplicitConversion
	MixedArrayTypes
	UnknownOperator
	UnknownMethod
	UnvalidatedCrossReference
)

// Code maps a semantic warning kind to its stable code. Unrecognized kinds
// fall back to WARN000.
func (k SemWarningKind) Code() Code {
	switch k {
	case UnusedVariable:
		return WarnUnusedVariable
	case VariableRedefinition, DuplicateSection, DuplicateKey:
		return WarnRedefinition
	case ImplicitConversion:
		return WarnImplicitConversion
	case MixedArrayTypes:
		return WarnMixedArrayTypes
	case UnknownOperator:
		return WarnUnknownOperator
	case UnknownMethod:
		return WarnUnknownMethod
	case UnvalidatedCrossReference:
		return WarnUnvalidatedCrossRef
	default:
		return WarnUnclassified
	}
}
