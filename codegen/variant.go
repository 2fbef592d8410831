package codegen

import "fmt"

// Variant identifies a random-math program family. The integer value is
// what the variant-selector compile flag carries, so it is part of the
// kernel-template contract.
type Variant int

const (
	// VariantWow selects the wow random-math family.
	VariantWow Variant = iota
	// VariantR selects the r random-math family.
	VariantR
)

func (v Variant) String() string {
	switch v {
	case VariantWow:
		return "wow"
	case VariantR:
		return "r"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// VariantFlag returns the compile option selecting v inside the kernel
// template, including its leading space so it can be appended to a base
// option string verbatim.
func VariantFlag(v Variant) string {
	return fmt.Sprintf(" -DVARIANT=%d", int(v))
}

// WideMathFlag returns the compile option enabling 64-bit random math for
// variants that require it, or the empty string. No current variant does;
// the hook exists for future families.
func WideMathFlag(v Variant) string {
	if !wideMath(v) {
		return ""
	}
	return " -DRANDOM_MATH_64_BIT"
}

func wideMath(Variant) bool {
	return false
}
