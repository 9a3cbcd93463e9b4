package object

import (
	"github.com/ezrec/sicxe/translate"
)

var f = translate.From

// ErrRecordSyntax is a malformed or unexpected object record.
type ErrRecordSyntax string

func (err ErrRecordSyntax) Error() string {
	return f("record '%v' malformed", string(err))
}

// ErrRecordLength is a record shorter or longer than its fields require.
type ErrRecordLength string

func (err ErrRecordLength) Error() string {
	return f("record '%v' has wrong length", string(err))
}

// ErrRecordMissing names a required record type absent from the input.
type ErrRecordMissing string

func (err ErrRecordMissing) Error() string {
	return f("%v record missing", string(err))
}

// ErrHexSyntax is a raw hex program that does not decode.
type ErrHexSyntax string

func (err ErrHexSyntax) Error() string {
	return f("hex program invalid: %v", string(err))
}

// ErrLine locates an object record error.
type ErrLine struct {
	LineNo int
	Err    error
}

func (err *ErrLine) Error() string {
	if err.LineNo == 0 {
		return err.Err.Error()
	}
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}
