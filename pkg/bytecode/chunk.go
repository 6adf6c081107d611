package bytecode

import (
	"encoding/binary"
	"math"
)

const (
	// shortConstantLimit is the pool size from which WriteConstant switches
	// to OpConstantLong.
	shortConstantLimit = 255

	// MaxConstants is the largest pool OpConstantLong can address.
	MaxConstants = math.MaxUint16 + 1
)

// Chunk is an append-only unit of bytecode: the code itself, a constant pool
// and a run-length encoded map from code offset to source line.
//
// A chunk is built by a single writer and then handed to a VM. The VM never
// mutates it, so a finished chunk may be shared read-only by several VMs.
type Chunk struct {
	code      []byte
	lines     lineMap
	constants []Value
}

// NewChunk creates a new empty chunk.
func NewChunk() *Chunk {
	return &Chunk{
		code:      make([]byte, 0, 64),
		constants: make([]Value, 0, 8),
	}
}

// AppendByte appends one raw byte to the code and records its source line.
func (c *Chunk) AppendByte(b byte, line int) {
	c.code = append(c.code, b)
	c.lines.record(line)
}

// Emit appends a single-byte opcode and returns its offset.
func (c *Chunk) Emit(op Opcode, line int) int {
	offset := len(c.code)
	c.AppendByte(byte(op), line)
	return offset
}

// EmitWithOperand appends an opcode followed by its operand bytes, all
// attributed to the same line, and returns the opcode's offset.
func (c *Chunk) EmitWithOperand(op Opcode, line int, operands ...byte) int {
	offset := c.Emit(op, line)
	for _, b := range operands {
		c.AppendByte(b, line)
	}
	return offset
}

// AddConstant adds a value to the pool and returns its index.
// Constants are never deduplicated.
func (c *Chunk) AddConstant(v Value) int {
	c.constants = append(c.constants, v)
	return len(c.constants) - 1
}

// WriteConstant adds v to the pool and emits the instruction loading it.
// OpConstant is used while the pool holds fewer than 255 entries,
// OpConstantLong (little-endian index) afterwards. Returns the pool index.
// On error nothing is appended.
func (c *Chunk) WriteConstant(v Value, line int) (int, error) {
	if len(c.constants) >= MaxConstants {
		return 0, ErrTooManyConstantsLong
	}

	idx := c.AddConstant(v)
	if len(c.constants) < shortConstantLimit {
		if idx > math.MaxUint8 {
			c.constants = c.constants[:idx]
			return 0, ErrTooManyConstantsShort
		}
		c.EmitWithOperand(OpConstant, line, byte(idx))
		return idx, nil
	}

	var operand [2]byte
	binary.LittleEndian.PutUint16(operand[:], uint16(idx))
	c.EmitWithOperand(OpConstantLong, line, operand[:]...)
	return idx, nil
}

// LineAt returns the source line of the code byte at offset.
func (c *Chunk) LineAt(offset int) (int, error) {
	return c.lines.lineAt(offset)
}

// LineRuns returns a copy of the run-length line map.
func (c *Chunk) LineRuns() []LineRun {
	runs := make([]LineRun, len(c.lines.runs))
	copy(runs, c.lines.runs)
	return runs
}

// Code returns the code section. Callers must not modify it.
func (c *Chunk) Code() []byte {
	return c.code
}

// CodeLen returns the length of the code section.
func (c *Chunk) CodeLen() int {
	return len(c.code)
}

// Constant returns the pool entry at idx.
func (c *Chunk) Constant(idx int) (Value, error) {
	if idx < 0 || idx >= len(c.constants) {
		return 0, ErrConstantIndex
	}
	return c.constants[idx], nil
}

// Constants returns a copy of the constant pool.
func (c *Chunk) Constants() []Value {
	out := make([]Value, len(c.constants))
	copy(out, c.constants)
	return out
}

// ConstantCount returns the number of constants in the pool.
func (c *Chunk) ConstantCount() int {
	return len(c.constants)
}

// ReadByteAt returns the code byte at offset.
func (c *Chunk) ReadByteAt(offset int) (byte, error) {
	if offset < 0 || offset >= len(c.code) {
		return 0, ErrUnexpectedEnd
	}
	return c.code[offset], nil
}

// ReadUint16LE reads a little-endian uint16 operand starting at offset.
func (c *Chunk) ReadUint16LE(offset int) (uint16, error) {
	if offset < 0 || offset+2 > len(c.code) {
		return 0, ErrUnexpectedEnd
	}
	return binary.LittleEndian.Uint16(c.code[offset:]), nil
}
