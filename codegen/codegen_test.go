package codegen

import (
	"strings"
	"testing"
)

// TestRender_Opcodes verifies the exact statement template for every opcode.
func TestRender_Opcodes(t *testing.T) {
	tests := []struct {
		name string
		in   Instruction
		want string
	}{
		{"mul", Instruction{Op: Mul, Dst: 0, Src: 1}, "r0*=r1;\n"},
		{"add", Instruction{Op: Add, Dst: 2, Src: 3, Imm: 4042322160}, "r2+=r3+4042322160U;\n"},
		{"add zero imm", Instruction{Op: Add, Dst: 1, Src: 0, Imm: 0}, "r1+=r0+0U;\n"},
		{"sub", Instruction{Op: Sub, Dst: 3, Src: 2}, "r3-=r2;\n"},
		{"ror", Instruction{Op: Ror, Dst: 1, Src: 2}, "r1=rotate(r1,ROT_BITS-r2);\n"},
		{"rol", Instruction{Op: Rol, Dst: 0, Src: 3}, "r0=rotate(r0,r3);\n"},
		{"xor", Instruction{Op: Xor, Dst: 2, Src: 0}, "r2^=r0;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render([]Instruction{tt.in}); got != tt.want {
				t.Errorf("Render(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestRender_PreservesOrder verifies statements appear in exactly the input
// order; program semantics depend on it.
func TestRender_PreservesOrder(t *testing.T) {
	ops := []Instruction{
		{Op: Xor, Dst: 0, Src: 1},
		{Op: Mul, Dst: 1, Src: 2},
		{Op: Add, Dst: 2, Src: 3, Imm: 7},
		{Op: Ror, Dst: 3, Src: 0},
	}

	want := "r0^=r1;\n" +
		"r1*=r2;\n" +
		"r2+=r3+7U;\n" +
		"r3=rotate(r3,ROT_BITS-r0);\n"

	if got := Render(ops); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

// TestRender_Deterministic verifies byte-identical output for repeated
// renders of the same sequence.
func TestRender_Deterministic(t *testing.T) {
	ops := make([]Instruction, 0, MaxInstructions)
	for i := 0; i < MaxInstructions; i++ {
		ops = append(ops, Instruction{
			Op:  Opcode(i % 6),
			Dst: uint8(i % 4),
			Src: uint8((i + 1) % 4),
			Imm: uint32(i) * 2654435761,
		})
	}

	first := Render(ops)
	for i := 0; i < 5; i++ {
		if got := Render(ops); got != first {
			t.Fatalf("render %d differs from first render", i+1)
		}
	}

	if n := strings.Count(first, "\n"); n != MaxInstructions {
		t.Errorf("rendered %d statements, want %d", n, MaxInstructions)
	}
}

// TestRender_Empty verifies an empty sequence renders to the empty string.
func TestRender_Empty(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Errorf("Render(nil) = %q, want empty", got)
	}
}

// TestOpcode_String verifies opcode names.
func TestOpcode_String(t *testing.T) {
	tests := []struct {
		op   Opcode
		want string
	}{
		{Mul, "MUL"},
		{Add, "ADD"},
		{Sub, "SUB"},
		{Ror, "ROR"},
		{Rol, "ROL"},
		{Xor, "XOR"},
		{Opcode(42), "OP(42)"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Opcode(%d).String() = %q, want %q", uint8(tt.op), got, tt.want)
		}
	}
}
