package asm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zkssa/internal/asm"
	"zkssa/internal/ir"
)

const twoCalleeSource = `
fn add(u32, u32) -> (u32) {
  entry(a: u32, c: u32):
    r = add a, c
    return r
}

fn sub(u32, u32) -> (u32) {
  entry(a: u32, c: u32):
    r = sub a, c
    return r
}

fn caller(function, u32, u32) -> (u32) {
  entry(g: function, a: u32, c: u32):
    r = call g(a, c) -> (u32)
    return r
}

fn driver(u32, u32) -> (u32, u32) {
  entry():
    five = const 5 u32
    two = const 2 u32
    fv_add = fnref add
    fv_sub = fnref sub
    cv1 = fnref caller
    cv2 = fnref caller
    r1 = call cv1(fv_add, five, two) -> (u32)
    r2 = call cv2(fv_sub, five, two) -> (u32)
    return r1, r2
}
`

func TestParseAndBuild(t *testing.T) {
	parsed, err := asm.ParseString("fixture.ssa", twoCalleeSource)
	require.NoError(t, err)
	assert.Len(t, parsed.Functions, 4)
}

func TestBuildRejectsUndeclaredValue(t *testing.T) {
	src := `
fn broken() -> (u32) {
  entry():
    return missing
}
`
	parsed, err := asm.ParseString("fixture.ssa", src)
	require.NoError(t, err)

	_, err = asm.Build(parsed)
	assert.Error(t, err)
}

func TestBuildSimpleFunctionEvaluatesStructurally(t *testing.T) {
	src := `
fn add(u32, u32) -> (u32) {
  entry(a: u32, c: u32):
    r = add a, c
    return r
}
`
	parsed, err := asm.ParseString("fixture.ssa", src)
	require.NoError(t, err)

	program, err := asm.Build(parsed)
	require.NoError(t, err)
	require.Len(t, program.Functions, 1)

	fn := program.Functions[0]
	sig := fn.Signature()
	assert.Len(t, sig.Params, 2)
	assert.Len(t, sig.Returns, 1)
	assert.Equal(t, "u32", sig.Params[0].String())
}

func TestDefunctionalizeThroughAsm(t *testing.T) {
	src := `
fn add(u32, u32) -> (u32) {
  entry(a: u32, c: u32):
    r = add a, c
    return r
}

fn sub(u32, u32) -> (u32) {
  entry(a: u32, c: u32):
    r = sub a, c
    return r
}

fn caller(function, u32, u32) -> (u32) {
  entry(g: function, a: u32, c: u32):
    r = call g(a, c) -> (u32)
    return r
}

fn driver() -> (u32, u32) {
  entry():
    five = const 5 u32
    two = const 2 u32
    fv_add = fnref add
    fv_sub = fnref sub
    cv1 = fnref caller
    cv2 = fnref caller
    r1 = call cv1(fv_add, five, two) -> (u32)
    r2 = call cv2(fv_sub, five, two) -> (u32)
    return r1, r2
}
`
	parsed, err := asm.ParseString("fixture.ssa", src)
	require.NoError(t, err)

	program, err := asm.Build(parsed)
	require.NoError(t, err)

	before := len(program.Functions)
	ir.Defunctionalize(program)
	assert.Greater(t, len(program.Functions), before, "expected an apply function to be synthesized")
	assert.Contains(t, ir.Print(program), "fn ")
}
