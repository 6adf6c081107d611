package bytecode

import (
	"errors"
	"strings"
	"testing"
)

func TestAllOpcodesHaveMetadata(t *testing.T) {
	for _, op := range AllOpcodes() {
		info := GetOpcodeInfo(op)
		if info.Name == "" || strings.HasPrefix(info.Name, "UNKNOWN") {
			t.Errorf("Opcode 0x%02X has no metadata", op)
		}
		if !strings.HasPrefix(info.Name, "OP_") {
			t.Errorf("Opcode 0x%02X name %q lacks OP_ prefix", op, info.Name)
		}
	}
}

func TestOpcodeCount(t *testing.T) {
	if got := OpcodeCount(); got != 8 {
		t.Errorf("OpcodeCount() = %d, want 8", got)
	}
	if got := len(AllOpcodes()); got != OpcodeCount() {
		t.Errorf("len(AllOpcodes()) = %d, want %d", got, OpcodeCount())
	}
}

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		op   Opcode
		want string
	}{
		{OpConstant, "OP_CONSTANT"},
		{OpConstantLong, "OP_CONSTANT_LONG"},
		{OpAdd, "OP_ADD"},
		{OpSubtract, "OP_SUBTRACT"},
		{OpMultiply, "OP_MULTIPLY"},
		{OpDivide, "OP_DIVIDE"},
		{OpNegate, "OP_NEGATE"},
		{OpReturn, "OP_RETURN"},
	}

	for _, tt := range tests {
		got := tt.op.String()
		if got != tt.want {
			t.Errorf("Opcode(0x%02X).String() = %q, want %q", byte(tt.op), got, tt.want)
		}
	}
}

func TestUnknownOpcodeString(t *testing.T) {
	op := Opcode(0xEE)
	got := op.String()
	if !strings.HasPrefix(got, "UNKNOWN") {
		t.Errorf("Unknown opcode should return UNKNOWN, got %q", got)
	}
}

func TestOpcodeOperandLen(t *testing.T) {
	tests := []struct {
		op   Opcode
		want int
	}{
		{OpConstant, 1},     // u8 index
		{OpConstantLong, 2}, // u16le index
		{OpAdd, 0},
		{OpSubtract, 0},
		{OpMultiply, 0},
		{OpDivide, 0},
		{OpNegate, 0},
		{OpReturn, 0},
	}

	for _, tt := range tests {
		if got := tt.op.OperandLen(); got != tt.want {
			t.Errorf("%s.OperandLen() = %d, want %d", tt.op, got, tt.want)
		}
		if got := tt.op.InstructionLen(); got != tt.want+1 {
			t.Errorf("%s.InstructionLen() = %d, want %d", tt.op, got, tt.want+1)
		}
	}
}

func TestOpcodeCategories(t *testing.T) {
	for _, op := range AllOpcodes() {
		wantConst := op == OpConstant || op == OpConstantLong
		if op.IsConstantLoad() != wantConst {
			t.Errorf("%s.IsConstantLoad() = %v, want %v", op, op.IsConstantLoad(), wantConst)
		}
		info := GetOpcodeInfo(op)
		wantBinary := info.StackPop == 2
		if op.IsBinary() != wantBinary {
			t.Errorf("%s.IsBinary() = %v, want %v", op, op.IsBinary(), wantBinary)
		}
	}
}

func TestDecodeOpcode(t *testing.T) {
	for _, op := range AllOpcodes() {
		got, err := DecodeOpcode(byte(op))
		if err != nil {
			t.Errorf("DecodeOpcode(0x%02X) error: %v", byte(op), err)
			continue
		}
		if got != op {
			t.Errorf("DecodeOpcode(0x%02X) = %s, want %s", byte(op), got, op)
		}
	}

	_, err := DecodeOpcode(0xEE)
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Fatalf("DecodeOpcode(0xEE) error = %v, want ErrUnknownOpcode", err)
	}
	var opErr *OpcodeError
	if !errors.As(err, &opErr) || opErr.Byte != 0xEE {
		t.Errorf("DecodeOpcode(0xEE) error = %#v, want *OpcodeError{Byte: 0xEE}", err)
	}
	if !strings.Contains(err.Error(), "238") {
		t.Errorf("error %q should name the byte value", err.Error())
	}
}
