package ir

// Program is the whole compilation unit this pass rewrites: a table of
// functions, one of which is the designated entry point.
type Program struct {
	Functions map[FunctionId]*Function
	order     []FunctionId
	Main      FunctionId
	nextId    FunctionId
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{Functions: make(map[FunctionId]*Function)}
}

// AddFn allocates the next FunctionId, hands it to build so the callback can
// close over its own identity while constructing a Function (typically via
// FunctionBuilder), and registers the result in the program's function
// table in insertion order.
func (p *Program) AddFn(build func(FunctionId) *Function) FunctionId {
	id := p.nextId
	p.nextId++
	fn := build(id)
	p.Functions[id] = fn
	p.order = append(p.order, id)
	return id
}

// FunctionIds returns every function id in insertion order, which is also
// FunctionId order since ids are assigned densely starting at 0. Passes that
// need reproducible iteration over the whole program table use this instead
// of ranging over the map directly.
func (p *Program) FunctionIds() []FunctionId {
	out := make([]FunctionId, len(p.order))
	copy(out, p.order)
	return out
}
