// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package object reads and writes SIC/XE object records, and the raw hex
// program format.
//
// An object program is one H (header) record, one or more T (text) records
// and one E (end) record:
//
//	H<name:6><start:6><length:6>
//	T<address:6><count:2><bytes...>
//	E<start:6>
//
// All numeric fields are upper case hexadecimal.
package object

import (
	"encoding/hex"
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/ezrec/sicxe/internal"
)

const (
	NAME_LIMIT = 6  // Maximum program name length.
	TEXT_LIMIT = 30 // Maximum bytes in a T record.
)

// Text is a block of contiguous program bytes.
type Text struct {
	Address uint32
	Data    []byte
}

// All yields the address and value of every byte of the block.
func (txt Text) All() iter.Seq2[uint32, byte] {
	return func(yield func(uint32, byte) bool) {
		for n, b := range txt.Data {
			if !yield(txt.Address+uint32(n), b) {
				return
			}
		}
	}
}

// Record is a parsed or assembled object program.
type Record struct {
	Name   string
	Start  uint32
	Length uint32
	Text   []Text
	Entry  uint32
}

// Append adds bytes at an address, extending the last T record when the
// bytes are contiguous with it and it has room.
func (rec *Record) Append(addr uint32, data []byte) {
	for len(data) > 0 {
		last := len(rec.Text) - 1
		if last >= 0 {
			txt := &rec.Text[last]
			room := TEXT_LIMIT - len(txt.Data)
			if txt.Address+uint32(len(txt.Data)) == addr && room > 0 {
				n := min(room, len(data))
				txt.Data = append(txt.Data, data[:n]...)
				addr += uint32(n)
				data = data[n:]
				continue
			}
		}
		n := min(TEXT_LIMIT, len(data))
		rec.Text = append(rec.Text, Text{Address: addr, Data: slices.Clone(data[:n])})
		addr += uint32(n)
		data = data[n:]
	}
}

// Bytes yields every program byte with its address, in record order.
func (rec *Record) Bytes() iter.Seq2[uint32, byte] {
	seqs := make([]iter.Seq2[uint32, byte], 0, len(rec.Text))
	for _, txt := range rec.Text {
		seqs = append(seqs, txt.All())
	}
	return internal.IterSeq2Concat(seqs...)
}

// Extent returns the size of the image: the offset past the highest T
// record byte, relative to the start address.
func (rec *Record) Extent() (extent int) {
	for _, txt := range rec.Text {
		end := int64(txt.Address) - int64(rec.Start) + int64(len(txt.Data))
		extent = max(extent, int(end))
	}
	return
}

// Image returns the program bytes relative to the start address.
// Gaps between T records are zero filled.
func (rec *Record) Image() (image []byte) {
	image = make([]byte, rec.Extent())
	for addr, b := range rec.Bytes() {
		offset := int64(addr) - int64(rec.Start)
		if offset >= 0 {
			image[offset] = b
		}
	}
	return
}

// WriteTo writes the record in object text format.
func (rec *Record) WriteTo(w io.Writer) (n int64, err error) {
	var lines []string

	lines = append(lines, fmt.Sprintf("H%-6s%06X%06X", rec.Name, rec.Start, rec.Length))
	for _, txt := range rec.Text {
		lines = append(lines, fmt.Sprintf("T%06X%02X%X", txt.Address, len(txt.Data), txt.Data))
	}
	lines = append(lines, fmt.Sprintf("E%06X", rec.Entry))

	wrote, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	n = int64(wrote)
	return
}

// Write writes a record in object text format.
func Write(w io.Writer, rec *Record) (err error) {
	_, err = rec.WriteTo(w)
	return
}

// Format returns the record in object text format.
func Format(rec *Record) string {
	var sb strings.Builder
	rec.WriteTo(&sb)
	return sb.String()
}

// parseField parses a fixed width hexadecimal field.
func parseField(line string, at, width int) (value uint32, err error) {
	if len(line) < at+width {
		err = ErrRecordLength(line)
		return
	}
	v64, err := strconv.ParseUint(line[at:at+width], 16, 32)
	if err != nil {
		err = ErrRecordSyntax(line)
		return
	}
	value = uint32(v64)
	return
}

// Parse reads object text into a Record.
func Parse(text string) (rec *Record, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrLine{LineNo: lineno, Err: err}
		}
	}()

	var header, end bool
	rec = &Record{}

	for lineno, line = range internal.Lines(text) {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		if end {
			err = ErrRecordSyntax(line)
			return
		}

		switch line[0] {
		case 'H':
			if header {
				err = ErrRecordSyntax(line)
				return
			}
			header = true
			if len(line) < 1+NAME_LIMIT+12 {
				err = ErrRecordLength(line)
				return
			}
			rec.Name = strings.TrimRight(line[1:1+NAME_LIMIT], " ")
			if rec.Start, err = parseField(line, 1+NAME_LIMIT, 6); err != nil {
				return
			}
			if rec.Length, err = parseField(line, 1+NAME_LIMIT+6, 6); err != nil {
				return
			}
		case 'T':
			if !header {
				err = ErrRecordMissing("H")
				return
			}
			var addr, count uint32
			if addr, err = parseField(line, 1, 6); err != nil {
				return
			}
			if count, err = parseField(line, 7, 2); err != nil {
				return
			}
			payload := line[9:]
			if len(payload) != int(count)*2 {
				err = ErrRecordLength(line)
				return
			}
			if addr < rec.Start {
				err = ErrRecordSyntax(line)
				return
			}
			var data []byte
			data, err = hex.DecodeString(payload)
			if err != nil {
				err = ErrRecordSyntax(line)
				return
			}
			rec.Text = append(rec.Text, Text{Address: addr, Data: data})
		case 'E':
			if !header {
				err = ErrRecordMissing("H")
				return
			}
			if rec.Entry, err = parseField(line, 1, 6); err != nil {
				return
			}
			end = true
		default:
			err = ErrRecordSyntax(line)
			return
		}
	}

	lineno = 0
	if !header {
		err = ErrRecordMissing("H")
		return
	}
	if !end {
		err = ErrRecordMissing("E")
		return
	}

	return
}

// ParseHex decodes the raw hex program format: pairs of hex digits, one
// per byte. White space is ignored.
func ParseHex(text string) (data []byte, err error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	data, err = hex.DecodeString(digits)
	if err != nil {
		err = ErrHexSyntax(err.Error())
		return
	}

	return
}
