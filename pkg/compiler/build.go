package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vkobinski/micro-compiler/pkg/toolchain"
)

// OutputPaths derives the assembly, object and executable paths from
// srcPath by swapping its extension. The source must carry an extension so
// that the executable, which drops it, cannot collide with the source file.
func OutputPaths(srcPath string) (asmPath, objPath, exePath string, err error) {
	ext := filepath.Ext(srcPath)
	if ext == "" {
		return "", "", "", fmt.Errorf("source file %q has no extension to derive output names from", srcPath)
	}
	stem := strings.TrimSuffix(srcPath, ext)
	return stem + ".asm", stem + ".o", stem, nil
}

// Build compiles srcPath all the way to a native executable: assembly is
// emitted next to the source, assembled into an object file and linked
// against libc. A non-empty outPath overrides the executable path. Returns
// the executable path and the final symbol table.
//
// A compile error writes nothing. After a failed assemble or link the
// intermediate .asm and .o files are left on disk for inspection.
func Build(srcPath, outPath string) (string, *SymbolTable, error) {
	asmPath, objPath, exePath, err := OutputPaths(srcPath)
	if err != nil {
		return "", nil, err
	}
	if outPath != "" {
		exePath = outPath
	}

	syms, err := CompileFile(srcPath, asmPath)
	if err != nil {
		return "", nil, err
	}
	if err := toolchain.Assemble(asmPath, objPath); err != nil {
		return "", nil, err
	}
	if err := toolchain.Link(objPath, exePath); err != nil {
		return "", nil, err
	}
	return exePath, syms, nil
}
