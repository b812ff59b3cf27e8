package jsurl

import "fmt"

// Kind represents the type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON-like value: null, bool, number, string, array, or an
// insertion-ordered object. Object keys are unique; order is preserved so
// re-serialization reproduces the original byte layout.
type Value struct {
	kind Kind

	boolVal bool
	numVal  float64
	strVal  string

	arrVal []*Value
	objVal []Member
}

// Member is one key-value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Number creates a numeric value.
func Number(v float64) *Value {
	return &Value{kind: KindNumber, numVal: v}
}

// String creates a string value.
func String(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// Array creates an array value.
func Array(elems ...*Value) *Value {
	return &Value{kind: KindArray, arrVal: elems}
}

// Object creates an object value from members.
func Object(members ...Member) *Value {
	return &Value{kind: KindObject, objVal: members}
}

// Field creates a Member for use in Object construction.
func Field(key string, v *Value) Member {
	return Member{Key: key, Value: v}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind. A nil Value reads as null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil {
		return false, fmt.Errorf("jsurl: nil value")
	}
	if v.kind != KindBool {
		return false, fmt.Errorf("jsurl: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// AsNumber returns the numeric value.
func (v *Value) AsNumber() (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("jsurl: nil value")
	}
	if v.kind != KindNumber {
		return 0, fmt.Errorf("jsurl: expected number, got %s", v.kind)
	}
	return v.numVal, nil
}

// AsString returns the string value.
func (v *Value) AsString() (string, error) {
	if v == nil {
		return "", fmt.Errorf("jsurl: nil value")
	}
	if v.kind != KindString {
		return "", fmt.Errorf("jsurl: expected string, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsArray returns the array elements.
func (v *Value) AsArray() ([]*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("jsurl: nil value")
	}
	if v.kind != KindArray {
		return nil, fmt.Errorf("jsurl: expected array, got %s", v.kind)
	}
	return v.arrVal, nil
}

// AsObject returns the object members.
func (v *Value) AsObject() ([]Member, error) {
	if v == nil {
		return nil, fmt.Errorf("jsurl: nil value")
	}
	if v.kind != KindObject {
		return nil, fmt.Errorf("jsurl: expected object, got %s", v.kind)
	}
	return v.objVal, nil
}

// Len returns the length of an array or object.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindArray:
		return len(v.arrVal)
	case KindObject:
		return len(v.objVal)
	default:
		return 0
	}
}

// Get returns an object member value by key, or nil if absent. A nil result
// means the key is missing; a present null member returns a non-nil Value of
// KindNull, so callers can tell "absent" from "null" from "zero".
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	for _, m := range v.objVal {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Index returns the i-th element of an array.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.kind != KindArray {
		return nil, fmt.Errorf("jsurl: not an array")
	}
	if i < 0 || i >= len(v.arrVal) {
		return nil, fmt.Errorf("jsurl: index %d out of bounds (len=%d)", i, len(v.arrVal))
	}
	return v.arrVal[i], nil
}

// ============================================================
// Mutators
// ============================================================

// Set replaces an object member by key, appending when the key is new.
// Insertion order of existing members is untouched.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindObject {
		panic("jsurl: cannot set on non-object")
	}
	for i := range v.objVal {
		if v.objVal[i].Key == key {
			v.objVal[i].Value = val
			return
		}
	}
	v.objVal = append(v.objVal, Member{Key: key, Value: val})
}

// Append adds a value to an array.
func (v *Value) Append(val *Value) {
	if v.kind != KindArray {
		panic("jsurl: cannot append to non-array")
	}
	v.arrVal = append(v.arrVal, val)
}

// Equal reports deep equality of two values. Objects compare by member
// sequence, so key order matters, matching serialized equality.
func (v *Value) Equal(o *Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindNumber:
		return v.numVal == o.numVal
	case KindString:
		return v.strVal == o.strVal
	case KindArray:
		if len(v.arrVal) != len(o.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(o.arrVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.objVal) != len(o.objVal) {
			return false
		}
		for i := range v.objVal {
			if v.objVal[i].Key != o.objVal[i].Key {
				return false
			}
			if !v.objVal[i].Value.Equal(o.objVal[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
