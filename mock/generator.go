package mock

import (
	"fmt"

	"github.com/jonwraymond/clforge/codegen"
)

var _ codegen.Generator = Generator

// Generator is a deterministic instruction generator. It expands a
// (variant, height) seed into a short, bounded operation sequence, so any
// two calls with equal arguments produce identical instructions.
func Generator(v codegen.Variant, height uint64) ([]codegen.Instruction, error) {
	switch v {
	case codegen.VariantWow, codegen.VariantR:
	default:
		return nil, fmt.Errorf("mock: %s: %w", v, codegen.ErrUnsupportedVariant)
	}

	n := 8 + int(height%5)
	seed := height*2654435761 + uint64(v) + 1
	ops := make([]codegen.Instruction, 0, n)
	for i := 0; i < n; i++ {
		seed = seed*6364136223846793005 + 1442695040888963407
		ops = append(ops, codegen.Instruction{
			Op:  codegen.Opcode(seed % 6),
			Dst: uint8((seed >> 8) % 4),
			Src: uint8((seed >> 16) % 4),
			Imm: uint32(seed >> 24),
		})
	}
	return ops, nil
}
