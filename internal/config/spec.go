package config

import (
	"fmt"
	"strings"
)

// ScalarKind is the resolved YAML type of a key or value inside a keyed spec.
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarBool
	ScalarInt
	ScalarFloat
	ScalarString
	// ScalarOther covers nested sequences/mappings and unresolvable tags.
	ScalarOther
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarNull:
		return "null"
	case ScalarBool:
		return "bool"
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarString:
		return "string"
	default:
		return "other"
	}
}

// Scalar is a single key or value of a keyed spec after tag resolution.
type Scalar struct {
	Kind  ScalarKind
	Bool  bool
	Int   int
	Float float64
	// Text is the source text; for ScalarOther it describes the node.
	Text string
}

// Null, Bool, Int, Float and String build scalars, mostly for tests.
func Null() Scalar             { return Scalar{Kind: ScalarNull} }
func Bool(b bool) Scalar       { return Scalar{Kind: ScalarBool, Bool: b, Text: fmt.Sprint(b)} }
func Int(n int) Scalar         { return Scalar{Kind: ScalarInt, Int: n, Text: fmt.Sprint(n)} }
func Float(f float64) Scalar   { return Scalar{Kind: ScalarFloat, Float: f, Text: fmt.Sprint(f)} }
func String(s string) Scalar   { return Scalar{Kind: ScalarString, Text: s} }
func Other(desc string) Scalar { return Scalar{Kind: ScalarOther, Text: desc} }

func (s Scalar) String() string {
	switch s.Kind {
	case ScalarNull:
		return "null"
	case ScalarString:
		return fmt.Sprintf("%q", s.Text)
	default:
		return s.Text
	}
}

// Shape enumerates the forms a protocol spec can take in the document.
type Shape int

const (
	// ShapeAbsent means the protocol key is not present at all.
	ShapeAbsent Shape = iota
	// ShapeNull means the key is present without a value ("ssh:").
	ShapeNull
	ShapeBool
	ShapeInt
	// ShapeList is delimited text such as "80, 443".
	ShapeList
	// ShapeMapping is an ordered source: destination mapping.
	ShapeMapping
	// ShapeInvalid is any other node; Spec.Text names what was found.
	ShapeInvalid
)

func (s Shape) String() string {
	switch s {
	case ShapeAbsent:
		return "absent"
	case ShapeNull:
		return "null"
	case ShapeBool:
		return "bool"
	case ShapeInt:
		return "int"
	case ShapeList:
		return "list"
	case ShapeMapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// Entry is one key/value pair of a keyed spec, in document order.
type Entry struct {
	Key   Scalar
	Value Scalar
}

// Spec is a protocol spec classified once at load time. Exactly the fields
// matching Shape are meaningful.
type Spec struct {
	Shape   Shape
	Bool    bool
	Int     int
	Text    string
	Entries []Entry
	Line    int
}

// AbsentSpec, NullSpec, BoolSpec, IntSpec, ListSpec, MappingSpec and
// InvalidSpec construct specs of the corresponding shape.
func AbsentSpec() Spec             { return Spec{Shape: ShapeAbsent} }
func NullSpec() Spec               { return Spec{Shape: ShapeNull} }
func BoolSpec(b bool) Spec         { return Spec{Shape: ShapeBool, Bool: b} }
func IntSpec(n int) Spec           { return Spec{Shape: ShapeInt, Int: n} }
func ListSpec(text string) Spec    { return Spec{Shape: ShapeList, Text: text} }
func MappingSpec(e ...Entry) Spec  { return Spec{Shape: ShapeMapping, Entries: e} }
func InvalidSpec(what string) Spec { return Spec{Shape: ShapeInvalid, Text: what} }

// Present reports whether the key appeared in the container body.
func (s Spec) Present() bool {
	return s.Shape != ShapeAbsent
}

func (s Spec) String() string {
	switch s.Shape {
	case ShapeBool:
		return fmt.Sprint(s.Bool)
	case ShapeInt:
		return fmt.Sprint(s.Int)
	case ShapeList:
		return fmt.Sprintf("%q", s.Text)
	case ShapeMapping:
		parts := make([]string, len(s.Entries))
		for i, e := range s.Entries {
			parts[i] = e.Key.String() + ": " + e.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ShapeInvalid:
		return s.Text
	default:
		return s.Shape.String()
	}
}
