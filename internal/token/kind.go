package token

// Kind represents the category of a TuskTsk token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the document.
	EOF

	// Ident represents a bare identifier (section names, keys, bare words).
	Ident
	// String represents a quoted string literal.
	String
	// Number represents an integer or float literal.
	Number
	// Bool represents the 'true' or 'false' literal.
	Bool
	// Null represents the 'null' literal.
	Null
	// Date represents a bare ISO date literal (YYYY-MM-DD).
	Date
	// AtCall represents a whole '@operator(...)' call captured verbatim.
	AtCall
	// FuncBody represents a verbatim embedded function body (FUJSEN).
	FuncBody
	// Dollar represents the '$' sigil introducing a global reference.
	Dollar

	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// Assign represents '=' or ':' between a key and its value.
	Assign
	// Comma represents ','.
	Comma
	// Dot represents '.' in dotted references.
	Dot

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Ident:    "Ident",
	String:   "String",
	Number:   "Number",
	Bool:     "Bool",
	Null:     "Null",
	Date:     "Date",
	AtCall:   "AtCall",
	FuncBody: "FuncBody",
	Dollar:   "Dollar",
	LBracket: "LBracket",
	RBracket: "RBracket",
	LBrace:   "LBrace",
	RBrace:   "RBrace",
	Assign:   "Assign",
	Comma:    "Comma",
	Dot:      "Dot",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}
