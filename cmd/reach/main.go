// Command reach runs a small bundled demonstration program through the
// bytecode generator and interpreter, the same way the teacher's cmd/main.go
// drives its grammar compiler end to end. There is no source-text parser in
// this package (out of scope, see SPEC_FULL.md) — the program below is built
// directly out of ast.go node values, the way a test would build one.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/reach-lang/reach"
)

func main() {
	var (
		dumpAST      = flag.Bool("dump-ast", false, "Print the demo program's bytecode block names before running")
		dumpBytecode = flag.Bool("dump-bytecode", false, "Print the size of the encoded bytecode before running")
		noGC         = flag.Bool("no-gc", false, "Disable automatic garbage collection")
	)
	flag.Parse()

	config := reach.ConfigFromEnviron()
	config.SetBool("runtime.no_gc", *noGC)
	config.SetBool("runtime.dump_ast", *dumpAST)
	config.SetBool("runtime.dump_bytecode", *dumpBytecode)

	vm := reach.New(config)
	vm.Stdout = os.Stdout

	prog := demoProgram()
	block := reach.GenerateProgram(vm, prog)

	if config.GetBool("runtime.dump_ast") {
		dumpBlock(block, 0)
	}
	if config.GetBool("runtime.dump_bytecode") {
		fmt.Printf("encoded bytecode: %d bytes\n", len(reach.Encode(block)))
	}

	top := reach.NewFunction(vm.Heap, block, vm.Global, nil)
	fn, ok := top.AsCell().(*reach.Function)
	if !ok {
		log.Fatal("generated top-level block did not produce a callable Function")
	}

	if _, err := vm.Call(fn, nil); err != nil {
		log.Fatal(err)
	}

	stats := vm.Heap.Stats()
	fmt.Printf("heap: %d live cells, %d collections\n", stats.Live, stats.Collections)
}

func dumpBlock(b *reach.BytecodeBlock, depth int) {
	fmt.Printf("%*sblock %q: %d instructions, %d locals\n", depth*2, "", b.Name, len(b.Code), b.NumLocals)
	for _, nested := range b.Nested {
		dumpBlock(nested, depth+1)
	}
}

// demoProgram builds:
//
//	function greet(name) {
//	  println(name)
//	  return name
//	}
//	let result = greet("world")
func demoProgram() *reach.Program {
	nameParam := reach.Parameter{Name: "name"}
	body := &reach.BlockStatement{
		Declarations: []reach.Declaration{
			&reach.StatementDeclaration{
				Statement: &reach.ExpressionStatement{
					Expr: &reach.CallExpression{
						Callee: &reach.Identifier{Name: "println"},
						Args:   []reach.Expression{&reach.Identifier{Name: "name"}},
					},
				},
			},
			&reach.StatementDeclaration{
				Statement: &reach.ReturnStatement{
					Value: &reach.Identifier{Name: "name"},
				},
			},
		},
	}
	greet := &reach.FunctionDeclaration{
		Name:   "greet",
		Params: []reach.Parameter{nameParam},
		Body:   body,
	}
	call := &reach.LexicalDeclaration{
		Name: "result",
		Init: &reach.CallExpression{
			Callee: &reach.Identifier{Name: "greet"},
			Args:   []reach.Expression{&reach.StringLiteral{Value: "world"}},
		},
	}
	return &reach.Program{Declarations: []reach.Declaration{greet, call}}
}
