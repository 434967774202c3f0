package sema

// argType constrains what a known operator accepts at a given position.
type argType uint8

const (
	argAny argType = iota
	argString
)

// opSignature describes a known @operator: argument count bounds and the
// expected type per fixed position. Variadic tails accept anything.
type opSignature struct {
	minArgs int
	maxArgs int // -1 = variadic
	fixed   []argType
}

// knownOperators is the closed table the analyzer validates calls against.
// The operators themselves are evaluated by an external runtime; only shape
// is checked here.
var knownOperators = map[string]opSignature{
	"env":      {minArgs: 1, maxArgs: 2, fixed: []argType{argString, argAny}},
	"date":     {minArgs: 0, maxArgs: 1, fixed: []argType{argString}},
	"cache":    {minArgs: 2, maxArgs: 2, fixed: []argType{argString, argAny}},
	"query":    {minArgs: 1, maxArgs: -1, fixed: []argType{argString}},
	"file":     {minArgs: 1, maxArgs: 1, fixed: []argType{argString}},
	"request":  {minArgs: 0, maxArgs: 1, fixed: []argType{argString}},
	"if":       {minArgs: 3, maxArgs: 3},
	"learn":    {minArgs: 1, maxArgs: 2, fixed: []argType{argString, argAny}},
	"optimize": {minArgs: 1, maxArgs: 2, fixed: []argType{argString, argAny}},
	"metrics":  {minArgs: 1, maxArgs: 2, fixed: []argType{argString, argAny}},
	"feature":  {minArgs: 1, maxArgs: 1, fixed: []argType{argString}},
}

// knownCrossFileMethods are the verbs accepted on '@file.tsk.<method>(...)'.
var knownCrossFileMethods = map[string]bool{
	"get": true,
	"set": true,
}
