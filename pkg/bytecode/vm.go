package bytecode

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("loxvm.vm")

// VM executes a bytecode chunk against a fixed-capacity operand stack.
//
// A VM is single-threaded. Independent interpreters each need their own VM;
// they may share the same chunk.
type VM struct {
	chunk *Chunk // Owned for the duration of a run, never mutated
	ip    int    // Offset of the next byte to fetch
	stack Stack

	id       uuid.UUID
	out      io.Writer // Where OpReturn emits its value
	traceOut io.Writer

	// Trace prints the stack and the next instruction before each step.
	Trace bool
}

// NewVM creates a VM that will execute chunk.
func NewVM(chunk *Chunk) *VM {
	return &VM{
		chunk:    chunk,
		id:       uuid.New(),
		out:      os.Stdout,
		traceOut: os.Stdout,
	}
}

// ID returns the identifier this VM uses in log messages.
func (vm *VM) ID() uuid.UUID {
	return vm.id
}

// Chunk returns the chunk the VM executes.
func (vm *VM) Chunk() *Chunk {
	return vm.chunk
}

// SetOutput sets where OpReturn writes its result.
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

// SetTraceOutput sets where the execution trace is written.
func (vm *VM) SetTraceOutput(w io.Writer) {
	vm.traceOut = w
}

// Push pushes v onto the operand stack.
func (vm *VM) Push(v Value) error {
	return vm.stack.Push(v)
}

// Pop pops the top of the operand stack.
func (vm *VM) Pop() (Value, error) {
	return vm.stack.Pop()
}

// StackDepth returns the number of values currently on the stack.
func (vm *VM) StackDepth() int {
	return vm.stack.Len()
}

// Run executes the chunk from offset 0 with an empty stack until OP_RETURN,
// which emits and returns the popped value. Any failure stops the run and is
// returned as an *InterpretError.
func (vm *VM) Run() (Value, error) {
	vm.ip = 0
	vm.stack.Reset()

	if vm.chunk == nil || vm.chunk.CodeLen() == 0 {
		err := &InterpretError{Kind: RuntimeError, Offset: -1, Err: ErrEmptyChunk}
		log.Errorf("vm %s: %v", vm.id, err)
		return 0, err
	}

	log.Debugf("vm %s: run %d bytes, %d constants", vm.id, vm.chunk.CodeLen(), vm.chunk.ConstantCount())
	result, err := vm.run()
	if err != nil {
		log.Errorf("vm %s: %v", vm.id, err)
		return 0, err
	}
	log.Debugf("vm %s: returned %s", vm.id, result)
	return result, nil
}

// run is the main execution loop.
func (vm *VM) run() (Value, error) {
	code := vm.chunk.code
	for {
		if vm.ip >= len(code) {
			return 0, runtimeError(vm.ip, ErrNoReturn)
		}
		start := vm.ip

		if vm.Trace {
			if err := vm.traceInstruction(start); err != nil {
				return 0, runtimeError(start, err)
			}
		}

		b := code[vm.ip]
		vm.ip++

		var err error
		switch op := Opcode(b); op {
		case OpConstant:
			var idx byte
			if idx, err = vm.readByte(); err == nil {
				err = vm.pushConstant(int(idx))
			}

		case OpConstantLong:
			var idx uint16
			if idx, err = vm.readUint16(); err == nil {
				err = vm.pushConstant(int(idx))
			}

		case OpNegate:
			var top *Value
			if top, err = vm.stack.Top(); err == nil {
				*top = -*top
			}

		case OpAdd, OpSubtract, OpMultiply, OpDivide:
			err = vm.binaryOp(op)

		case OpReturn:
			v, err := vm.stack.Pop()
			if err != nil {
				return 0, runtimeError(start, err)
			}
			if _, err := fmt.Fprintln(vm.out, v); err != nil {
				return 0, runtimeError(start, fmt.Errorf("emit result: %w", err))
			}
			return v, nil

		default:
			err = &OpcodeError{Byte: b, Offset: start}
		}

		if err != nil {
			return 0, runtimeError(start, err)
		}
	}
}

// binaryOp pops b and combines it into the new top slot: top = top <op> b.
func (vm *VM) binaryOp(op Opcode) error {
	b, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	a, err := vm.stack.Top()
	if err != nil {
		return err
	}
	switch op {
	case OpAdd:
		*a += b
	case OpSubtract:
		*a -= b
	case OpMultiply:
		*a *= b
	case OpDivide:
		*a /= b
	}
	return nil
}

func (vm *VM) pushConstant(idx int) error {
	v, err := vm.chunk.Constant(idx)
	if err != nil {
		return fmt.Errorf("%w: %d (pool size %d)", err, idx, vm.chunk.ConstantCount())
	}
	return vm.stack.Push(v)
}

// Bytecode reading helpers

func (vm *VM) readByte() (byte, error) {
	b, err := vm.chunk.ReadByteAt(vm.ip)
	if err != nil {
		return 0, err
	}
	vm.ip++
	return b, nil
}

func (vm *VM) readUint16() (uint16, error) {
	val, err := vm.chunk.ReadUint16LE(vm.ip)
	if err != nil {
		return 0, err
	}
	vm.ip += 2
	return val, nil
}

// traceInstruction writes the stack contents followed by the disassembly of
// the instruction at offset.
func (vm *VM) traceInstruction(offset int) error {
	w := vm.traceOut
	if _, err := io.WriteString(w, "          "); err != nil {
		return err
	}
	for _, slot := range vm.stack.Slots() {
		if _, err := fmt.Fprintf(w, "[ %s ]", slot); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	_, err := vm.chunk.DisassembleInstruction(w, offset)
	return err
}
