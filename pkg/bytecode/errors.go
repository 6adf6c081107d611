package bytecode

import (
	"errors"
	"fmt"
)

// Encoding errors, returned while building a chunk.
var (
	ErrTooManyConstantsShort = errors.New("too many constants for OP_CONSTANT (max 256)")
	ErrTooManyConstantsLong  = errors.New("too many constants for OP_CONSTANT_LONG (max 65536)")
)

// Decoding errors, returned while disassembling or executing.
var (
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrLineOffset    = errors.New("no line for offset")
	ErrUnexpectedEnd = errors.New("unexpected end of code")
)

// Runtime errors.
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrConstantIndex  = errors.New("constant index out of range")
	ErrEmptyChunk     = errors.New("chunk has no code")
	ErrNoReturn       = errors.New("reached end of code without OP_RETURN")
)

// OpcodeError reports a byte that does not decode to a known Opcode.
// Offset is -1 when the byte was decoded outside of any chunk.
type OpcodeError struct {
	Byte   byte
	Offset int
}

func (e *OpcodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("unknown opcode: %d", e.Byte)
	}
	return fmt.Sprintf("unknown opcode: %d at offset %d", e.Byte, e.Offset)
}

// Is makes errors.Is(err, ErrUnknownOpcode) match.
func (e *OpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}

// LineError reports an offset that has no entry in a chunk's line map.
type LineError struct {
	Offset int
	Len    int
}

func (e *LineError) Error() string {
	return fmt.Sprintf("no line for offset %d (code length %d)", e.Offset, e.Len)
}

// Is makes errors.Is(err, ErrLineOffset) match.
func (e *LineError) Is(target error) bool {
	return target == ErrLineOffset
}

// ErrorKind distinguishes a bad program from bad bytecode.
type ErrorKind uint8

const (
	// CompileError is reserved for a front end producing chunks from source.
	CompileError ErrorKind = iota + 1

	// RuntimeError covers everything raised while executing a chunk.
	RuntimeError
)

// String returns a human-readable name for ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case CompileError:
		return "compilation error"
	case RuntimeError:
		return "runtime error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// InterpretError is the error returned by VM.Run.
type InterpretError struct {
	Kind   ErrorKind
	Offset int // Offset of the failing instruction, -1 if not tied to one
	Err    error
}

func (e *InterpretError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s at offset %04d: %v", e.Kind, e.Offset, e.Err)
}

func (e *InterpretError) Unwrap() error {
	return e.Err
}

func runtimeError(offset int, err error) *InterpretError {
	return &InterpretError{Kind: RuntimeError, Offset: offset, Err: err}
}
