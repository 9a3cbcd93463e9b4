// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// isExpr returns true for a $(...) operand.
func isExpr(operand string) bool {
	return strings.HasPrefix(operand, "$(") && strings.HasSuffix(operand, ")")
}

// evalExpr does compile-time $(...) evaluations, with every known symbol
// bound as an integer global.
func evalExpr(operand string, symbols SymbolTable) (value int64, err error) {
	expr := operand[2 : len(operand)-1]

	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, addr := range symbols {
		pred[name] = starlark.MakeInt(addr)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}
