// Package bytecode provides a minimal stack-based virtual machine that
// executes arithmetic programs over double-precision values.
//
// The bytecode format is designed for:
//   - Compact representation (1-3 bytes per instruction)
//   - Fast decoding (one opcode byte, operand width fixed per opcode)
//   - Source mapping at low cost (run-length encoded line map)
//
// # Architecture Overview
//
//   - Value: the runtime operand, a float64.
//
//   - Opcodes: return, two constant loads (1-byte and 2-byte little-endian
//     pool index), negate and the four in-place binary arithmetic operations.
//
//   - Chunk: code bytes, a constant pool and a run-length line map. Chunks
//     are built append-only by a caller (there is no front end yet) and can
//     be disassembled into a listing of the form
//
//     0000  123 OP_CONSTANT         0 '1.2'
//     0002    | OP_RETURN
//
//   - VM: owns a chunk and a 256-slot operand stack and runs the
//     fetch-decode-dispatch loop until OP_RETURN or an error.
//
// # Stack Discipline
//
// Binary operations pop only the right operand and overwrite the left one in
// place through Stack.Top. Every push and pop is bounds-checked; violations
// surface as ErrStackOverflow / ErrStackUnderflow wrapped in an
// *InterpretError rather than corrupting memory.
//
// Division by zero follows IEEE-754 and produces an infinity or NaN.
package bytecode
