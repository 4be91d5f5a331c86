package ir

// Signature is the declared shape of a function: its parameter types and the
// types of whatever it returns.
type Signature struct {
	Params  []Type
	Returns []Type
}

// CallSignature is the shape observed at a call site: the argument types
// supplied and the result types expected.
type CallSignature struct {
	Params  []Type
	Returns []Type
}

// callSignatureFromCall derives a CallSignature from a call's argument
// values and its instruction's result values, as observed in fn's DFG.
func callSignatureFromCall(fn *Function, args []ValueId, results []ValueId) CallSignature {
	params := make([]Type, len(args))
	for i, a := range args {
		params[i] = fn.DFG.TypeOf(a)
	}
	returns := make([]Type, len(results))
	for i, r := range results {
		returns[i] = fn.DFG.TypeOf(r)
	}
	return CallSignature{Params: params, Returns: returns}
}

func (s Signature) key() string {
	return renderTypes(s.Params) + "->" + renderTypes(s.Returns)
}

// key turns the signature into a comparable value usable as a map key. Types
// are compared structurally via Is, not Go equality, so the key renders each
// type to its string form; two structurally-equal types always render
// identically because String is derived from the same fields Is compares.
func (s CallSignature) key() string {
	return renderTypes(s.Params) + "->" + renderTypes(s.Returns)
}

func renderTypes(types []Type) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += ","
		}
		out += t.String()
	}
	return out
}

// CanCall reports whether a call observed with this signature is permitted
// to target a function declaring target. Compatibility requires equal arity
// and structural type equality in both params and returns; it is never
// up-to-cast; see commonSignature for the LUB used to declare an apply
// function's own signature.
func (s CallSignature) CanCall(target Signature) bool {
	if len(s.Params) != len(target.Params) || len(s.Returns) != len(target.Returns) {
		return false
	}
	for i, p := range s.Params {
		if !p.Is(target.Params[i]) {
			return false
		}
	}
	for i, r := range s.Returns {
		if !target.Returns[i].Is(r) {
			return false
		}
	}
	return true
}

// commonSignature computes the point-wise least upper bound across a list of
// signatures. It panics with an internal compiler error if the list is
// empty or if any position fails to unify in either cast direction.
func commonSignature(signatures []Signature) Signature {
	if len(signatures) == 0 {
		panic(ice("defunctionalize: commonSignature called with no signatures"))
	}

	acc := signatures[0]
	for _, next := range signatures[1:] {
		acc = Signature{
			Params:  commonTypes(acc.Params, next.Params),
			Returns: commonTypes(acc.Returns, next.Returns),
		}
	}
	return acc
}

func commonTypes(a, b []Type) []Type {
	out := make([]Type, len(a))
	for i := range a {
		if merged, ok := a[i].CastTo(b[i]); ok {
			out[i] = merged
		} else if merged, ok := b[i].CastTo(a[i]); ok {
			out[i] = merged
		} else {
			panic(ice("defunctionalize: failed to find common type between %s and %s", a[i], b[i]))
		}
	}
	return out
}
