package bytecode

import "fmt"

// Opcode represents a bytecode instruction.
type Opcode byte

const (
	OpReturn       Opcode = 0x00 // Pop and emit top of stack, halt
	OpConstant     Opcode = 0x01 // Push constant: OpConstant <index:u8>
	OpConstantLong Opcode = 0x02 // Push constant: OpConstantLong <index:u16le>
	OpNegate       Opcode = 0x03 // Negate top of stack in place
	OpAdd          Opcode = 0x04 // Pop b, top = top + b
	OpSubtract     Opcode = 0x05 // Pop b, top = top - b
	OpMultiply     Opcode = 0x06 // Pop b, top = top * b
	OpDivide       Opcode = 0x07 // Pop b, top = top / b
)

// OpcodeInfo provides metadata about each opcode for debugging and validation.
type OpcodeInfo struct {
	Name       string // Mnemonic used by the disassembler
	StackPop   int    // How many values popped from stack
	StackPush  int    // How many values pushed to stack
	OperandLen int    // Number of operand bytes following the opcode
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpReturn:       {"OP_RETURN", 1, 0, 0},
	OpConstant:     {"OP_CONSTANT", 0, 1, 1},
	OpConstantLong: {"OP_CONSTANT_LONG", 0, 1, 2},
	OpNegate:       {"OP_NEGATE", 1, 1, 0},
	OpAdd:          {"OP_ADD", 2, 1, 0},
	OpSubtract:     {"OP_SUBTRACT", 2, 1, 0},
	OpMultiply:     {"OP_MULTIPLY", 2, 1, 0},
	OpDivide:       {"OP_DIVIDE", 2, 1, 0},
}

// DecodeOpcode converts a raw code byte into an Opcode.
// Bytes outside the instruction set yield an *OpcodeError.
func DecodeOpcode(b byte) (Opcode, error) {
	op := Opcode(b)
	if _, ok := opcodeInfoTable[op]; !ok {
		return 0, &OpcodeError{Byte: b, Offset: -1}
	}
	return op, nil
}

// GetOpcodeInfo returns metadata for an opcode.
// Returns a zero OpcodeInfo with name "UNKNOWN" if the opcode is not recognized.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(op))}
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// OperandLen returns the number of operand bytes for this opcode.
func (op Opcode) OperandLen() int {
	return GetOpcodeInfo(op).OperandLen
}

// InstructionLen returns the total length of an instruction (1 + operand bytes).
func (op Opcode) InstructionLen() int {
	return 1 + op.OperandLen()
}

// IsConstantLoad returns true for the opcodes that push from the constant pool.
func (op Opcode) IsConstantLoad() bool {
	return op == OpConstant || op == OpConstantLong
}

// IsBinary returns true for the in-place binary arithmetic opcodes.
func (op Opcode) IsBinary() bool {
	return op >= OpAdd && op <= OpDivide
}

// AllOpcodes returns a slice of all defined opcodes in byte order.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, len(opcodeInfoTable))
	for b := 0; b < 256; b++ {
		if _, ok := opcodeInfoTable[Opcode(b)]; ok {
			opcodes = append(opcodes, Opcode(b))
		}
	}
	return opcodes
}

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return len(opcodeInfoTable)
}
