package asm

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes the textual IR assembler format: one function per "fn"
// block, one basic block per label, one instruction per line.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Operator", `(->|=)`, nil},
		{"Punctuation", `[(){}:,]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
