package parser

// DeclKind tags a top-level declaration.
type DeclKind string

const (
	DeclPragma    DeclKind = "pragma"
	DeclImport    DeclKind = "import"
	DeclLibrary   DeclKind = "library"
	DeclInterface DeclKind = "interface"
	DeclContract  DeclKind = "contract"
)

// Declaration is one top-level construct of a source unit.
type Declaration struct {
	Type        DeclKind       `json:"type" yaml:"type"`
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Content     string         `json:"content,omitempty" yaml:"content,omitempty"`
	From        string         `json:"from,omitempty" yaml:"from,omitempty"`
	As          string         `json:"as,omitempty" yaml:"as,omitempty"`
	Symbols     []ImportSymbol `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Inheritance []string       `json:"inheritance,omitempty" yaml:"inheritance,omitempty"`
	Body        *Body          `json:"body,omitempty" yaml:"body,omitempty"`
}

// ImportSymbol is one entry of `import {A as B} from "..."`.
type ImportSymbol struct {
	Name  string `json:"name" yaml:"name"`
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// Body holds the members of a library, interface or contract in declaration
// order, grouped by kind.
type Body struct {
	Functions   []Function   `json:"functions,omitempty" yaml:"functions,omitempty"`
	Variables   []Variable   `json:"variables,omitempty" yaml:"variables,omitempty"`
	Usings      []Using      `json:"usings,omitempty" yaml:"usings,omitempty"`
	Mappings    []Mapping    `json:"mappings,omitempty" yaml:"mappings,omitempty"`
	Events      []Event      `json:"events,omitempty" yaml:"events,omitempty"`
	Modifiers   []Modifier   `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Structs     []Struct     `json:"structs,omitempty" yaml:"structs,omitempty"`
	Enums       []Enum       `json:"enums,omitempty" yaml:"enums,omitempty"`
	Errors      []Event      `json:"errors,omitempty" yaml:"errors,omitempty"`
	Constructor *Constructor `json:"constructor,omitempty" yaml:"constructor,omitempty"`
}

// Empty reports whether the body declares no members at all.
func (b *Body) Empty() bool {
	return b == nil || (len(b.Functions) == 0 && len(b.Variables) == 0 &&
		len(b.Usings) == 0 && len(b.Mappings) == 0 && len(b.Events) == 0 &&
		len(b.Modifiers) == 0 && len(b.Structs) == 0 && len(b.Enums) == 0 &&
		len(b.Errors) == 0 && b.Constructor == nil)
}

// Function bodies are raw text; Body is nil when the declaration ended with `;`.
type Function struct {
	Type       string      `json:"type" yaml:"type"`
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Returns    []string    `json:"returns,omitempty" yaml:"returns,omitempty"`
	Modifiers  []string    `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Body       *string     `json:"body,omitempty" yaml:"body,omitempty"`
}

type Constructor struct {
	Type       string      `json:"type" yaml:"type"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Modifiers  []string    `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Body       *string     `json:"body,omitempty" yaml:"body,omitempty"`
}

type Modifier struct {
	Type       string      `json:"type" yaml:"type"`
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Modifiers  []string    `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Body       *string     `json:"body,omitempty" yaml:"body,omitempty"`
}

// Parameter is one entry of a parameter list. Dims holds one entry per
// array suffix: the length as written, or "" for a dynamic array.
type Parameter struct {
	Type      string   `json:"type" yaml:"type"`
	Name      string   `json:"name" yaml:"name"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Dims      []string `json:"dims,omitempty" yaml:"dims,omitempty"`
}

// Variable is a state variable. DefaultValue keeps the terminating `;`.
type Variable struct {
	Type         string   `json:"type" yaml:"type"`
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Modifiers    []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	DefaultValue string   `json:"default_value,omitempty" yaml:"default_value,omitempty"`
}

// Event also models custom errors, which share its shape.
type Event struct {
	Type       string      `json:"type" yaml:"type"`
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

type Struct struct {
	Type   string        `json:"type" yaml:"type"`
	Name   string        `json:"name" yaml:"name"`
	Fields []StructField `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// StructField is a typed field, or a mapping field when Type is "mapping".
type StructField struct {
	Type      string   `json:"type" yaml:"type"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Dims      []string `json:"dims,omitempty" yaml:"dims,omitempty"`
}

type Enum struct {
	Type        string   `json:"type" yaml:"type"`
	Name        string   `json:"name" yaml:"name"`
	Definitions []string `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// Mapping keeps only the declared name; key and value types are discarded.
type Mapping struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

type Using struct {
	Type   string `json:"type" yaml:"type"`
	From   string `json:"from" yaml:"from"`
	Target string `json:"target" yaml:"target"`
}
