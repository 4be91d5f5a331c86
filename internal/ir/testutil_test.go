package ir

func u32() Type { return &NumericType{Kind: KindU32} }

// buildBinaryFn builds a two-argument, single-return function computing
// lhs `op` rhs, e.g. add(a, b) { return a + b }.
func buildBinaryFn(p *Program, name string, op BinaryOp) FunctionId {
	return p.AddFn(func(id FunctionId) *Function {
		b := NewFunctionBuilder(id, name, Acir)
		a := b.AddParameter(u32())
		c := b.AddParameter(u32())
		r := b.InsertBinary(a, op, c)
		b.TerminateWithReturn([]ValueId{r})
		return b.Finish()
	})
}

// buildDynamicCaller builds a function with signature (Function, u32, u32) -> u32
// whose body calls its first parameter as a function with the remaining two.
func buildDynamicCaller(p *Program, name string) FunctionId {
	return p.AddFn(func(id FunctionId) *Function {
		b := NewFunctionBuilder(id, name, Acir)
		g := b.AddParameter(&FunctionType{})
		a := b.AddParameter(u32())
		c := b.AddParameter(u32())
		results := b.InsertCall(g, []ValueId{a, c}, []Type{u32()})
		b.TerminateWithReturn(results)
		return b.Finish()
	})
}

// buildForwardingFn builds a function taking (Function, u32, u32), forwarding
// straight into target's call, used for S5's multi-frame threading scenario.
func buildForwardingFn(p *Program, name string, target FunctionId) FunctionId {
	return p.AddFn(func(id FunctionId) *Function {
		b := NewFunctionBuilder(id, name, Acir)
		g := b.AddParameter(&FunctionType{})
		a := b.AddParameter(u32())
		c := b.AddParameter(u32())
		targetValue := b.ImportFunction(target)
		results := b.InsertCall(targetValue, []ValueId{g, a, c}, []Type{u32()})
		b.TerminateWithReturn(results)
		return b.Finish()
	})
}

// literalCallerOf builds a function that calls target directly, passing a
// literal reference to passed as a value argument -- this is what makes
// passed's function id show up in functions_as_values during discovery.
func literalCallerOf(p *Program, name string, target, passed FunctionId) FunctionId {
	return p.AddFn(func(id FunctionId) *Function {
		b := NewFunctionBuilder(id, name, Acir)
		a := b.AddParameter(u32())
		c := b.AddParameter(u32())
		fv := b.ImportFunction(passed)
		targetValue := b.ImportFunction(target)
		results := b.InsertCall(targetValue, []ValueId{fv, a, c}, []Type{u32()})
		b.TerminateWithReturn(results)
		return b.Finish()
	})
}

// buildUnaryFn builds a single-argument, single-return function.
func buildUnaryFn(p *Program, name string, op BinaryOp) FunctionId {
	return p.AddFn(func(id FunctionId) *Function {
		b := NewFunctionBuilder(id, name, Acir)
		a := b.AddParameter(u32())
		r := b.InsertBinary(a, op, a)
		b.TerminateWithReturn([]ValueId{r})
		return b.Finish()
	})
}

// buildUnaryCaller builds a function with signature (Function, u32) -> u32
// whose body calls its first parameter as a function with the second.
func buildUnaryCaller(p *Program, name string) FunctionId {
	return p.AddFn(func(id FunctionId) *Function {
		b := NewFunctionBuilder(id, name, Acir)
		g := b.AddParameter(&FunctionType{})
		a := b.AddParameter(u32())
		results := b.InsertCall(g, []ValueId{a}, []Type{u32()})
		b.TerminateWithReturn(results)
		return b.Finish()
	})
}

func countFunctionsNamed(p *Program, name string) int {
	n := 0
	for _, id := range p.FunctionIds() {
		if p.Functions[id].Name == name {
			n++
		}
	}
	return n
}
