// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ezrec/sicxe/internal"
)

// statement is one parsed source line.
type statement struct {
	LineNo   int
	Source   string
	Label    string
	Mnemonic string
	Operand  string
	Op       Operation
	Known    bool // Mnemonic is in the operation table.
}

// source is a program split into its header and body statements.
type source struct {
	Name  string
	Start int
	Head  statement
	Body  []statement
}

// stripComment removes a '.' comment. Dots inside quotes are kept.
func stripComment(line string) string {
	quoted := false
	for n, ch := range line {
		switch ch {
		case '\'':
			quoted = !quoted
		case '.':
			if !quoted {
				return line[:n]
			}
		}
	}
	return line
}

// cutSpace splits text at its first run of white space.
func cutSpace(text string) (head, tail string) {
	n := strings.IndexFunc(text, unicode.IsSpace)
	if n < 0 {
		return text, ""
	}
	return text[:n], strings.TrimSpace(text[n:])
}

// parseStatement splits a line into label, mnemonic and operand. The first
// word is a label unless it names an operation.
func parseStatement(lineno int, line string) (st statement, ok bool) {
	text := strings.TrimSpace(stripComment(line))
	if len(text) == 0 {
		return
	}

	st.LineNo = lineno
	st.Source = line

	head, tail := cutSpace(text)
	if _, isOp := Lookup(head); isOp {
		st.Mnemonic, st.Operand = head, tail
	} else {
		st.Label = head
		st.Mnemonic, st.Operand = cutSpace(tail)
	}

	st.Op, st.Known = Lookup(st.Mnemonic)
	ok = true
	return
}

// parseSource splits a program into its header and body. The header is the
// first line that is neither blank nor a comment.
func parseSource(text string) (src source, err error) {
	header := false
	for lineno, line := range internal.Lines(text) {
		if !header {
			if strings.HasPrefix(strings.TrimSpace(line), ".") {
				continue
			}
			stripped := strings.TrimSpace(stripComment(line))
			if len(stripped) == 0 {
				continue
			}
			header = true
			src.Head = statement{LineNo: lineno, Source: line}
			fields := strings.Fields(stripped)
			src.Name = fields[0]
			if len(fields) >= 3 && fields[1] == "START" {
				src.Head.Operand = fields[2]
				src.Start, err = strconv.Atoi(fields[2])
				if err != nil || src.Start < 0 {
					err = ErrSyntax{LineNo: lineno, Line: line, Err: ErrInvalidOperand(fields[2])}
					return
				}
			}
			continue
		}

		st, ok := parseStatement(lineno, line)
		if ok {
			src.Body = append(src.Body, st)
		}
	}

	return
}
