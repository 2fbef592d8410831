// Package codegen renders height-seeded random-math instruction sequences
// into device source text.
//
// Rendering is pure: the same instruction sequence always produces the same
// text, one statement per instruction, in input order. The compiled
// program's numeric behavior depends on exact order preservation, so Render
// never reorders, merges or drops statements.
package codegen
