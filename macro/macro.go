// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package macro implements the SIC/XE macro processor.
//
// A macro is defined by a header line, a body and a MEND line:
//
//	NAME   MACRO &P1,&P2
//	       ...body, using &P1 and &P2...
//	       MEND
//
// A call names the macro, optionally after a label, with comma separated
// arguments. The body is expanded in place with each parameter replaced by
// its argument, and may itself call or define macros. The '->' sequence is
// removed after substitution, so 'L&P->X' can build composite names.
package macro

import (
	"cmp"
	"io"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/sicxe/internal"
)

// MAX_DEPTH is the default expansion depth limit.
const MAX_DEPTH = 64

// Definition is a committed macro definition.
type Definition struct {
	Name   string   // Macro name.
	Params []string // Parameter names, each with its leading '&'.
	Body   []string // Raw body lines.
}

// Processor expands macro calls in SIC/XE source.
type Processor struct {
	Verbose  bool // If set, verbosely logs definitions and expansions.
	MaxDepth int  // Expansion depth limit. MAX_DEPTH if zero.

	definitions map[string]*Definition
}

// Process expands every macro call in the source, and removes the macro
// definitions.
func (proc *Processor) Process(source string) (expanded string, err error) {
	proc.definitions = map[string]*Definition{}

	var lines []string
	err = proc.pass(&lines, source, 0)
	if err != nil {
		return
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	expanded = sb.String()

	return
}

// ProcessReader expands the source read from r.
func (proc *Processor) ProcessReader(r io.Reader) (expanded string, err error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return
	}

	return proc.Process(string(source))
}

// Process expands source with the default processor.
func Process(source string) (expanded string, err error) {
	proc := &Processor{}
	return proc.Process(source)
}

// Definitions returns the macro names defined by the last run, sorted.
func (proc *Processor) Definitions() []string {
	return slices.Sorted(maps.Keys(proc.definitions))
}

// Definition returns a macro defined by the last run.
func (proc *Processor) Definition(name string) (def *Definition, ok bool) {
	def, ok = proc.definitions[name]
	return
}

func (proc *Processor) maxDepth() int {
	if proc.MaxDepth <= 0 {
		return MAX_DEPTH
	}
	return proc.MaxDepth
}

// isComment returns true for a '.' comment line.
func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ".")
}

// splitList splits a comma separated list, dropping empty entries.
func splitList(list string) (items []string) {
	for item := range strings.SplitSeq(list, ",") {
		if len(item) != 0 {
			items = append(items, item)
		}
	}
	return
}

// parseParams returns the parameter names of a MACRO header.
func parseParams(fields []string) (params []string) {
	for _, param := range splitList(strings.Join(fields, "")) {
		if strings.HasPrefix(param, "&") {
			params = append(params, param)
		}
	}
	return
}

// isMend returns true for a MEND line, with or without a label.
func isMend(fields []string) bool {
	return fields[0] == "MEND" || (len(fields) >= 2 && fields[1] == "MEND")
}

// call identifies a macro call line. A leading word that is not a macro
// is a label.
func (proc *Processor) call(fields []string) (def *Definition, label string, args string, ok bool) {
	rest := fields[1:]
	def, ok = proc.definitions[fields[0]]
	if !ok && len(fields) >= 2 {
		def, ok = proc.definitions[fields[1]]
		label = fields[0]
		rest = fields[2:]
	}
	if !ok {
		label = ""
		return
	}

	if len(rest) != 0 {
		args = rest[0]
	}

	return
}

// pass scans text once, collecting definitions and expanding calls.
func (proc *Processor) pass(out *[]string, text string, depth int) (err error) {
	var level int
	var def *Definition
	var defLine int

	for lineno, line := range internal.Lines(text) {
		fields := strings.Fields(line)

		if len(fields) == 0 || isComment(line) {
			if def != nil {
				def.Body = append(def.Body, line)
			} else {
				*out = append(*out, line)
			}
			continue
		}

		switch {
		case len(fields) >= 2 && fields[1] == "MACRO":
			level++
			if level == 1 {
				def = &Definition{Name: fields[0], Params: parseParams(fields[2:])}
				defLine = lineno
				continue
			}
		case isMend(fields):
			if level == 0 {
				// Unmatched MEND.
				continue
			}
			level--
			if level == 0 {
				if proc.Verbose {
					log.Printf("macro: define %v %v", def.Name, def.Params)
				}
				proc.definitions[def.Name] = def
				def = nil
				continue
			}
		}

		if def != nil {
			def.Body = append(def.Body, line)
			continue
		}

		called, label, args, ok := proc.call(fields)
		if !ok {
			*out = append(*out, line)
			continue
		}

		if len(label) != 0 {
			*out = append(*out, label)
		}

		err = proc.expand(out, called, args, depth+1)
		if err != nil {
			err = ErrMacro{Macro: called.Name, LineNo: lineno, Err: err}
			return
		}
	}

	if def != nil {
		err = ErrMacroOpen{Macro: def.Name, LineNo: defLine}
		return
	}

	return
}

// expand emits the body of a macro call with its arguments substituted.
func (proc *Processor) expand(out *[]string, def *Definition, args string, depth int) (err error) {
	if depth > proc.maxDepth() {
		err = ErrMacroDepth{Macro: def.Name, Depth: depth}
		return
	}

	values := splitList(args)
	if len(values) != len(def.Params) {
		err = ErrParameterCount{Macro: def.Name, Expected: len(def.Params), Received: len(values)}
		return
	}

	if proc.Verbose {
		log.Printf("macro: expand %v %v", def.Name, values)
	}

	// Longer parameter names first, so &AB is not clobbered by &A.
	order := make([]int, len(def.Params))
	for n := range order {
		order[n] = n
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(len(def.Params[b]), len(def.Params[a]))
	})

	var pairs []string
	for _, n := range order {
		pairs = append(pairs, def.Params[n], values[n])
	}
	replacer := strings.NewReplacer(pairs...)

	body := make([]string, len(def.Body))
	for n, line := range def.Body {
		if !isComment(line) {
			line = replacer.Replace(line)
			line = strings.ReplaceAll(line, "->", "")
		}
		body[n] = line
	}

	return proc.pass(out, strings.Join(body, "\n"), depth)
}
