// Package value implements the runtime value representation and the
// lexical environment chain that values are bound into. The two are
// colocated because a Scripted
// function value embeds a pointer to the Env active at its
// declaration site, which would otherwise make value and env import
// each other.
package value

import (
	"fmt"
	"math"

	"github.com/Duy-Thanh/DMKernel/ast"
)

// Type enumerates the runtime value categories.
type Type int

const (
	Null Type = iota
	Boolean
	Integer
	Float
	String
	Array
	Matrix
	Object
	Function
)

func (t Type) String() string {
	switch t {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Matrix:
		return "matrix"
	case Object:
		return "object"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Value is a tagged union over every runtime value category. Only
// Null, Boolean, the numeric variants, and String are constructable
// from source text; the rest exist so the value model can carry
// primitive results and function descriptors.
type Value struct {
	Type    Type
	payload interface{}
}

// NullValue is the singleton null value.
var NullValue = Value{Type: Null}

// BoolValue constructs a boolean value.
func BoolValue(b bool) Value {
	return Value{Type: Boolean, payload: b}
}

// IntValue constructs an integer value.
func IntValue(i int64) Value {
	return Value{Type: Integer, payload: i}
}

// FloatValue constructs a floating-point value.
func FloatValue(f float64) Value {
	return Value{Type: Float, payload: f}
}

// StringValue constructs a string value; strings are copied by value
// on assignment, which Go's immutable string type gives for free.
func StringValue(s string) Value {
	return Value{Type: String, payload: s}
}

// ArrayValue constructs an array value from an ordered slice.
func ArrayValue(elems []Value) Value {
	return Value{Type: Array, payload: elems}
}

// MatrixData describes a dense matrix of a single element type.
type MatrixData struct {
	Rows, Cols  int
	ElementType string
	Cells       []Value
}

// MatrixValue constructs a matrix value.
func MatrixValue(m *MatrixData) Value {
	return Value{Type: Matrix, payload: m}
}

// ObjectHandle is an opaque handle carried by Object values; no
// source syntax constructs one, so only native code populates it.
type ObjectHandle struct {
	Kind string
	Data interface{}
}

// ObjectValue constructs an object value.
func ObjectValue(h *ObjectHandle) Value {
	return Value{Type: Object, payload: h}
}

// NativeFunc is a Go-implemented function exposed to the evaluator.
type NativeFunc func(args []Value) (Value, error)

// FunctionDescriptor is either Native or Scripted. Exactly one of the
// two halves is populated.
type FunctionDescriptor struct {
	Name   string
	Native NativeFunc

	Params []string
	Body   *ast.Block
	Env    *Env // the environment captured at declaration time (lexical closure)
}

// NativeFunctionValue wraps a Go function as a callable value.
func NativeFunctionValue(name string, fn NativeFunc) Value {
	return Value{Type: Function, payload: &FunctionDescriptor{Name: name, Native: fn}}
}

// ScriptedFunctionValue wraps a user-defined function together with
// the closure environment captured at its declaration site.
func ScriptedFunctionValue(name string, params []string, body *ast.Block, env *Env) Value {
	return Value{Type: Function, payload: &FunctionDescriptor{
		Name: name, Params: params, Body: body, Env: env,
	}}
}

func (v Value) Bool() bool {
	b, _ := v.payload.(bool)
	return b
}

func (v Value) Int() int64 {
	i, _ := v.payload.(int64)
	return i
}

func (v Value) Float64() float64 {
	f, _ := v.payload.(float64)
	return f
}

// Number returns the value as a float64 regardless of whether it was
// stored as Integer or Float; used by arithmetic and comparisons,
// which operate uniformly on numeric variants.
func (v Value) Number() float64 {
	switch v.Type {
	case Integer:
		return float64(v.Int())
	case Float:
		return v.Float64()
	default:
		return 0
	}
}

func (v Value) Str() string {
	s, _ := v.payload.(string)
	return s
}

func (v Value) Elements() []Value {
	elems, _ := v.payload.([]Value)
	return elems
}

func (v Value) MatrixData() *MatrixData {
	m, _ := v.payload.(*MatrixData)
	return m
}

func (v Value) ObjectHandle() *ObjectHandle {
	h, _ := v.payload.(*ObjectHandle)
	return h
}

func (v Value) Function() *FunctionDescriptor {
	f, _ := v.payload.(*FunctionDescriptor)
	return f
}

// IsNumeric reports whether v holds a numeric variant.
func (v Value) IsNumeric() bool {
	return v.Type == Integer || v.Type == Float
}

// Truthy implements the coercion rule used by If/While/&&/||: false
// for false, null, 0, and the empty string; true otherwise.
func (v Value) Truthy() bool {
	switch v.Type {
	case Null:
		return false
	case Boolean:
		return v.Bool()
	case Integer, Float:
		return v.Number() != 0
	case String:
		return v.Str() != ""
	default:
		return true
	}
}

// Equal implements structural equality: values of different variants
// are always unequal (so 1 == true is false, per the open-question
// decision recorded in DESIGN.md).
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case Null:
		return true
	case Boolean:
		return a.Bool() == b.Bool()
	case Integer, Float:
		return a.Number() == b.Number()
	case String:
		return a.Str() == b.Str()
	default:
		return false
	}
}

// Display renders the canonical text form of a value: numbers use a
// locale-independent %f with six fractional digits, not trimmed;
// functions, arrays, matrices, and objects render as a bracketed
// placeholder.
func Display(v Value) string {
	switch v.Type {
	case Null:
		return "null"
	case Boolean:
		if v.Bool() {
			return "true"
		}
		return "false"
	case Integer, Float:
		f := v.Number()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Sprintf("%f", f)
		}
		return fmt.Sprintf("%f", f)
	case String:
		return v.Str()
	case Function:
		if fn := v.Function(); fn != nil && fn.Name != "" {
			return fmt.Sprintf("<function %s>", fn.Name)
		}
		return "<function>"
	case Array:
		return "<array>"
	case Matrix:
		return "<matrix>"
	case Object:
		return "<object>"
	default:
		return "<unknown>"
	}
}
