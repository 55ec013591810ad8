/*
Package compiler ties the stages of the language together.

Process of compilation

	Program Text ->
		parse ->
	Parse Tree (ast) ->
		analyze (+ symbols) ->
	Analyzed Tree (ir) ->
		execute -> Output Values
		or
		back -> Go or Rust Source Text

Executor and back end consume the same ir.Program,
so a compiled program prints what the interpreter would.
*/
package compiler
