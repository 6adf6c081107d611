package bytecode

import (
	"fmt"
	"io"
	"strings"
)

// Disassemble returns a human-readable listing of the chunk under a
// "== name ==" header.
func (c *Chunk) Disassemble(name string) (string, error) {
	var sb strings.Builder
	err := c.DisassembleTo(&sb, name)
	return sb.String(), err
}

// DisassembleTo writes the listing of the chunk to w. On error the lines
// written so far are left in w.
func (c *Chunk) DisassembleTo(w io.Writer, name string) error {
	if _, err := fmt.Fprintf(w, "== %s ==\n", name); err != nil {
		return err
	}
	offset := 0
	for offset < len(c.code) {
		next, err := c.DisassembleInstruction(w, offset)
		if err != nil {
			return err
		}
		offset = next
	}
	return nil
}

// DisassembleInstruction writes the instruction at offset as one line:
//
//	<offset:04> <line:4 or "   |"> <MNEMONIC:-16> <operand:4> '<constant>'
//
// and returns the offset of the next instruction.
func (c *Chunk) DisassembleInstruction(w io.Writer, offset int) (int, error) {
	text, next, err := c.formatInstruction(offset)
	if err != nil {
		return offset, err
	}
	if _, err := io.WriteString(w, text+"\n"); err != nil {
		return offset, err
	}
	return next, nil
}

// formatInstruction renders the instruction at offset without a trailing
// newline and returns the offset following it.
func (c *Chunk) formatInstruction(offset int) (string, int, error) {
	line, err := c.LineAt(offset)
	if err != nil {
		return "", offset, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%04d ", offset)
	if prev, err := c.LineAt(offset - 1); err == nil && prev == line {
		sb.WriteString("   | ")
	} else {
		fmt.Fprintf(&sb, "%4d ", line)
	}

	op, err := DecodeOpcode(c.code[offset])
	if err != nil {
		return "", offset, &OpcodeError{Byte: c.code[offset], Offset: offset}
	}

	switch op {
	case OpConstant:
		idx, err := c.ReadByteAt(offset + 1)
		if err != nil {
			return "", offset, err
		}
		return c.constantInstruction(&sb, op, offset, int(idx))

	case OpConstantLong:
		idx, err := c.ReadUint16LE(offset + 1)
		if err != nil {
			return "", offset, err
		}
		return c.constantInstruction(&sb, op, offset, int(idx))

	default:
		sb.WriteString(op.String())
		return sb.String(), offset + op.InstructionLen(), nil
	}
}

func (c *Chunk) constantInstruction(sb *strings.Builder, op Opcode, offset, idx int) (string, int, error) {
	// An index past the pool is still listed; the VM rejects it at run time.
	text := "<invalid>"
	if v, err := c.Constant(idx); err == nil {
		text = v.String()
	}
	fmt.Fprintf(sb, "%-16s %4d '%s'", op.String(), idx, text)
	return sb.String(), offset + op.InstructionLen(), nil
}

// DisassembleToLines returns the disassembly as a slice of lines, without
// the name header.
func (c *Chunk) DisassembleToLines() ([]string, error) {
	var lines []string
	offset := 0
	for offset < len(c.code) {
		text, next, err := c.formatInstruction(offset)
		if err != nil {
			return lines, err
		}
		lines = append(lines, text)
		offset = next
	}
	return lines, nil
}

// InstructionCount returns the number of instructions in the chunk.
// Note: This walks the whole code section, so it's O(n).
func (c *Chunk) InstructionCount() (int, error) {
	count := 0
	offset := 0
	for offset < len(c.code) {
		op, err := DecodeOpcode(c.code[offset])
		if err != nil {
			return count, &OpcodeError{Byte: c.code[offset], Offset: offset}
		}
		offset += op.InstructionLen()
		count++
	}
	if offset > len(c.code) {
		return count, ErrUnexpectedEnd
	}
	return count, nil
}
