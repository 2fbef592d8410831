package codegen

import (
	"errors"
	"fmt"
	"strings"
)

// MaxInstructions is the upper bound on generated sequence length that
// generators honor by contract.
const MaxInstructions = 256

// DefaultMarker is the token in kernel source templates that the rendered
// random-math block replaces.
const DefaultMarker = "CLFORGE_INCLUDE_RANDOM_MATH"

// ErrUnsupportedVariant is returned by generators for variant values they
// do not implement.
var ErrUnsupportedVariant = errors.New("codegen: unsupported variant")

// Opcode enumerates the random-math micro-operations.
type Opcode uint8

const (
	Mul Opcode = iota // dst *= src
	Add               // dst += src + imm
	Sub               // dst -= src
	Ror               // dst rotated right by src
	Rol               // dst rotated left by src
	Xor               // dst ^= src
)

func (o Opcode) String() string {
	switch o {
	case Mul:
		return "MUL"
	case Add:
		return "ADD"
	case Sub:
		return "SUB"
	case Ror:
		return "ROR"
	case Rol:
		return "ROL"
	case Xor:
		return "XOR"
	default:
		return fmt.Sprintf("OP(%d)", uint8(o))
	}
}

// Instruction is one micro-operation of a random-math program. Instructions
// are immutable once produced by a generator.
type Instruction struct {
	Op  Opcode
	Dst uint8  // destination register index
	Src uint8  // source register index
	Imm uint32 // immediate constant, used by Add only
}

// Generator produces the deterministic instruction sequence for a
// (variant, height) pair. Implementations live outside this module. A
// generator fails only for variants it does not support, reporting
// ErrUnsupportedVariant.
type Generator func(v Variant, height uint64) ([]Instruction, error)

// Render emits one device-source statement per instruction, preserving
// input order exactly. The rotate statements reference ROT_BITS, which the
// surrounding kernel template defines.
func Render(ops []Instruction) string {
	var b strings.Builder
	b.Grow(len(ops) * 24)

	for _, in := range ops {
		switch in.Op {
		case Mul:
			fmt.Fprintf(&b, "r%d*=r%d;", in.Dst, in.Src)
		case Add:
			fmt.Fprintf(&b, "r%d+=r%d+%dU;", in.Dst, in.Src, in.Imm)
		case Sub:
			fmt.Fprintf(&b, "r%d-=r%d;", in.Dst, in.Src)
		case Ror:
			fmt.Fprintf(&b, "r%d=rotate(r%d,ROT_BITS-r%d);", in.Dst, in.Dst, in.Src)
		case Rol:
			fmt.Fprintf(&b, "r%d=rotate(r%d,r%d);", in.Dst, in.Dst, in.Src)
		case Xor:
			fmt.Fprintf(&b, "r%d^=r%d;", in.Dst, in.Src)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
