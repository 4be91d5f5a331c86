package ir

// signatureEntry pairs a CallSignature with the value stored under it, in
// the order orderedSignatureMap.set first saw that signature.
type signatureEntry[V any] struct {
	Sig CallSignature
	Val V
}

// orderedSignatureMap maps CallSignature (itself not a valid Go map key,
// since it embeds slices) to an arbitrary value, while remembering
// insertion order, so that apply-function synthesis is reproducible across
// runs regardless of Go's randomized map iteration.
type orderedSignatureMap[V any] struct {
	order []string
	sigs  map[string]CallSignature
	vals  map[string]V
}

func newOrderedSignatureMap[V any]() *orderedSignatureMap[V] {
	return &orderedSignatureMap[V]{
		sigs: make(map[string]CallSignature),
		vals: make(map[string]V),
	}
}

func (m *orderedSignatureMap[V]) set(sig CallSignature, v V) {
	k := sig.key()
	if _, exists := m.vals[k]; !exists {
		m.order = append(m.order, k)
		m.sigs[k] = sig
	}
	m.vals[k] = v
}

func (m *orderedSignatureMap[V]) get(sig CallSignature) (V, bool) {
	v, ok := m.vals[sig.key()]
	return v, ok
}

func (m *orderedSignatureMap[V]) entries() []signatureEntry[V] {
	out := make([]signatureEntry[V], len(m.order))
	for i, k := range m.order {
		out[i] = signatureEntry[V]{Sig: m.sigs[k], Val: m.vals[k]}
	}
	return out
}
