package ir

import "math/big"

// FieldElement is an element of the prime field backing NativeField values.
// The pass never needs modular reduction or field arithmetic beyond equality
// and construction from small integers, so a thin wrapper over math/big is
// enough; there is no ecosystem field-arithmetic library in the reference
// corpus worth pulling in for that (see DESIGN.md).
type FieldElement struct {
	v *big.Int
}

// FieldFromUint64 builds a field element from a small unsigned integer.
func FieldFromUint64(n uint64) FieldElement {
	return FieldElement{v: new(big.Int).SetUint64(n)}
}

// FunctionIDToField is the canonical encoding shared by apply-function
// dispatch tests and the call-site rewrite: a function id becomes the field
// element carrying its numeric value.
func FunctionIDToField(id FunctionId) FieldElement {
	return FieldFromUint64(uint64(id))
}

func (f FieldElement) Equal(other FieldElement) bool {
	return f.v.Cmp(other.v) == 0
}

func (f FieldElement) Add(other FieldElement) FieldElement {
	return FieldElement{v: new(big.Int).Add(f.v, other.v)}
}

func (f FieldElement) Sub(other FieldElement) FieldElement {
	return FieldElement{v: new(big.Int).Sub(f.v, other.v)}
}

func (f FieldElement) Mul(other FieldElement) FieldElement {
	return FieldElement{v: new(big.Int).Mul(f.v, other.v)}
}

// IsTrue reports whether f is the field encoding of boolean true (1), the
// value ConstrainInstruction asserts its operand equals.
func (f FieldElement) IsTrue() bool {
	return f.v.Cmp(big.NewInt(1)) == 0
}

func (f FieldElement) Uint64() uint64 {
	return f.v.Uint64()
}

func (f FieldElement) String() string {
	return f.v.String()
}
