package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileConstantFolding(t *testing.T) {
	t.Run("Write", func(t *testing.T) {
		asm, _, err := Compile("begin write(1 + 2); end")
		require.NoError(t, err)
		assert.Contains(t, asm, "mov rsi, 3", "the folded constant feeds printf directly")
		assert.NotContains(t, asm, "add qword", "no runtime addition may remain")
	})

	t.Run("Assignment", func(t *testing.T) {
		asm, _, err := Compile("begin a := 1 + 2; end")
		require.NoError(t, err)
		assert.Contains(t, asm, "mov qword [rbp-8], 3")
		assert.NotContains(t, asm, "add qword")
	})

	t.Run("LiteralChain", func(t *testing.T) {
		// Right association folds 1-2-3 as 1-(2-3) = 2.
		asm, _, err := Compile("begin write(1 - 2 - 3); end")
		require.NoError(t, err)
		assert.Contains(t, asm, "mov rsi, 2")
		assert.NotContains(t, asm, "sub qword")
	})

	t.Run("FoldedNegativeResult", func(t *testing.T) {
		asm, _, err := Compile("begin a := 2 - 5; end")
		require.NoError(t, err)
		assert.Contains(t, asm, "mov qword [rbp-8], -3")
	})
}

func TestCompileRightAssociativity(t *testing.T) {
	// a - 2 - 3 evaluates as a - (2 - 3): the tail folds to -1 and a single
	// subtraction of -1 is applied to a's value, yielding 1-(-1) = 2. A
	// left-associative reading would subtract 2 and 3 in turn, giving -4.
	asm, _, err := Compile("begin a := 1; write(a - 2 - 3); end")
	require.NoError(t, err)

	assert.Contains(t, asm, "sub qword [rbp-16], -1")
	assert.Equal(t, 1, strings.Count(asm, "sub qword"), "exactly one runtime subtraction")
}

func TestCompileSiblingExpressionsReuseTempSlot(t *testing.T) {
	asm, _, err := Compile("begin a := 1; write(a + 1, a + 2); end")
	require.NoError(t, err)

	// Both list elements evaluate at depth 1, so both accumulate in the
	// same temp slot just above the named variables.
	assert.Contains(t, asm, "add qword [rbp-16], 1")
	assert.Contains(t, asm, "add qword [rbp-16], 2")
}

func TestCompileLiteralLeftOperand(t *testing.T) {
	asm, _, err := Compile("begin a := 5; b := 100 - a; end")
	require.NoError(t, err)

	// 100 is staged into the temp slot, then a's value is subtracted.
	assert.Contains(t, asm, "mov qword [rbp-16], 100")
	assert.Contains(t, asm, "sub qword [rbp-16], rax")
}

func TestCompileFrameSizeIsBackPatched(t *testing.T) {
	t.Run("VariablesOnly", func(t *testing.T) {
		asm, _, err := Compile("begin a := 1; end")
		require.NoError(t, err)
		assert.Contains(t, asm, "sub rsp, 16")
	})

	t.Run("VariablesAndTemps", func(t *testing.T) {
		src := "begin a := 1; b := a + 1; c := b + 1; write(a, b); read(a, b); write(a + 10, b + 10); end"
		asm, syms, err := Compile(src)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, syms.Names())
		// Three variables plus one temp level, rounded to 16.
		assert.Contains(t, asm, "sub rsp, 32")
		assert.NotContains(t, asm, "sub rsp, 0")
	})
}

func TestCompileEmitsStatementComments(t *testing.T) {
	asm, _, err := Compile("begin a := 1; write(a); read(a); end")
	require.NoError(t, err)

	assert.Contains(t, asm, "; a :=")
	assert.Contains(t, asm, "; write")
	assert.Contains(t, asm, "; read")
}

func TestCompileFile(t *testing.T) {
	t.Run("WritesAssembly", func(t *testing.T) {
		dir := t.TempDir()
		srcPath := filepath.Join(dir, "prog.micro")
		asmPath := filepath.Join(dir, "prog.asm")
		require.NoError(t, os.WriteFile(srcPath, []byte("begin a := 1; write(a); end"), 0o644))

		syms, err := CompileFile(srcPath, asmPath)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, syms.Names())

		text, err := os.ReadFile(asmPath)
		require.NoError(t, err)
		assert.Contains(t, string(text), "call printf")
	})

	t.Run("Testdata", func(t *testing.T) {
		dir := t.TempDir()
		syms, err := CompileFile(filepath.Join("testdata", "example.micro"), filepath.Join(dir, "example.asm"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, syms.Names())
	})

	t.Run("ErrorLeavesNoArtifact", func(t *testing.T) {
		dir := t.TempDir()
		srcPath := filepath.Join(dir, "bad.micro")
		asmPath := filepath.Join(dir, "bad.asm")
		require.NoError(t, os.WriteFile(srcPath, []byte("begin write(x); end"), 0o644))

		_, err := CompileFile(srcPath, asmPath)
		var semErr *SemanticError
		require.ErrorAs(t, err, &semErr)

		_, err = os.Stat(asmPath)
		assert.True(t, os.IsNotExist(err), "a failed compile must not write the assembly file")
	})

	t.Run("MissingSource", func(t *testing.T) {
		_, err := CompileFile(filepath.Join(t.TempDir(), "nope.micro"), "out.asm")
		assert.Error(t, err)
	})
}

func TestTokens(t *testing.T) {
	toks, err := Tokens("begin end")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, BEGIN, toks[0].Type)
	assert.Equal(t, END, toks[1].Type)
	assert.Equal(t, EOF, toks[2].Type)
}
