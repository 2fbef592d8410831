package codegen_test

import (
	"fmt"

	"github.com/jonwraymond/clforge/codegen"
)

func ExampleRender() {
	ops := []codegen.Instruction{
		{Op: codegen.Mul, Dst: 0, Src: 1},
		{Op: codegen.Add, Dst: 1, Src: 2, Imm: 2654435761},
		{Op: codegen.Ror, Dst: 2, Src: 3},
		{Op: codegen.Xor, Dst: 3, Src: 0},
	}

	fmt.Print(codegen.Render(ops))
	// Output:
	// r0*=r1;
	// r1+=r2+2654435761U;
	// r2=rotate(r2,ROT_BITS-r3);
	// r3^=r0;
}
