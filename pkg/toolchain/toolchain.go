// Package toolchain wraps the external assembler and linker that turn
// emitted assembly into a native executable.
package toolchain

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Tool names and flags are fixed constants of the design, not
// user-configurable: NASM assembling to ELF64, gcc linking against libc.
const (
	assembler = "nasm"
	linker    = "gcc"
)

// ToolError reports a failed assembler or linker run. It carries the tool's
// combined output and, when the tool ran at all, its exit code.
type ToolError struct {
	Tool     string
	ExitCode int // -1 when the tool could not be started
	Output   string
	Err      error
}

func (e *ToolError) Error() string {
	if out := strings.TrimSpace(e.Output); out != "" {
		return fmt.Sprintf("%s failed (exit %d): %s", e.Tool, e.ExitCode, out)
	}
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s failed (exit %d)", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Assemble runs the assembler on asmPath, producing the object file objPath.
func Assemble(asmPath, objPath string) error {
	return run(assembler, "-f", "elf64", asmPath, "-o", objPath)
}

// Link links objPath against libc, producing the executable outPath. The
// emitted code addresses its data directly, so the link is non-PIE.
func Link(objPath, outPath string) error {
	return run(linker, "-no-pie", objPath, "-o", outPath)
}

func run(tool string, args ...string) error {
	out, err := exec.Command(tool, args...).CombinedOutput()
	if err == nil {
		return nil
	}
	code := -1
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code = ee.ExitCode()
	}
	return &ToolError{Tool: tool, ExitCode: code, Output: string(out), Err: err}
}
