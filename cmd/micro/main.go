package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sanity-io/litter"

	"github.com/vkobinski/micro-compiler/pkg/compiler"
)

func main() {
	asmOnly := flag.Bool("S", false, "stop after emitting assembly, do not assemble or link")
	outPath := flag.String("o", "", "executable path (default: source path with its extension dropped)")
	debug := flag.Bool("debug", false, "dump the token stream and final symbol table")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: micro [-S] [-o output] [-debug] <source-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	srcPath := flag.Arg(0)

	if *debug {
		if err := dumpTokens(srcPath); err != nil {
			fail(err)
		}
	}

	if *asmOnly {
		asmPath, _, _, err := compiler.OutputPaths(srcPath)
		if err != nil {
			fail(err)
		}
		syms, err := compiler.CompileFile(srcPath, asmPath)
		if err != nil {
			fail(err)
		}
		if *debug {
			fmt.Print(syms)
		}
		fmt.Println("wrote", asmPath)
		return
	}

	exePath, syms, err := compiler.Build(srcPath, *outPath)
	if err != nil {
		fail(err)
	}
	if *debug {
		fmt.Print(syms)
	}
	fmt.Println("wrote", exePath)
}

// dumpTokens rescans the source eagerly and prints the token sequence.
// Compilation proper scans lazily, so this is the only pass that
// materializes the full stream.
func dumpTokens(srcPath string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	toks, err := compiler.Tokens(string(src))
	if err != nil {
		return err
	}
	litter.Dump(toks)
	return nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "micro: %v\n", err)
	os.Exit(1)
}
