package compiler

import (
	"fmt"
	"math"
	"strings"
)

// Emitter accumulates NASM-syntax x86-64 assembly, one line per call. The
// program is a single main in a flat stack frame; I/O goes through libc
// printf and scanf, so main follows the SysV calling convention.
type Emitter struct {
	lines    []string
	frameIdx int // index of the "sub rsp" line, patched once parsing is done
}

func NewEmitter() *Emitter {
	return &Emitter{frameIdx: -1}
}

// Prologue emits the externs, the format strings and the main entry
// sequence. The frame reservation is emitted as "sub rsp, 0" and patched by
// SetFrameSize once the whole program has been parsed.
func (e *Emitter) Prologue() {
	e.raw("    extern printf")
	e.raw("    extern scanf")
	e.raw("    global main")
	e.raw("")
	e.raw("    section .data")
	e.raw(`outfmt: db "%ld", 10, 0`)
	e.raw(`infmt:  db "%ld", 0`)
	e.raw("")
	e.raw("    section .text")
	e.raw("main:")
	e.ins("push rbp")
	e.ins("mov rbp, rsp")
	e.frameIdx = len(e.lines)
	e.ins("sub rsp, 0")
}

// Epilogue emits the frame teardown and a zero exit status.
func (e *Emitter) Epilogue() {
	e.ins("mov eax, 0")
	e.ins("leave")
	e.ins("ret")
}

// SetFrameSize patches the prologue's stack reservation to n bytes.
func (e *Emitter) SetFrameSize(n int) {
	e.lines[e.frameIdx] = fmt.Sprintf("    sub rsp, %d", n)
}

// Comment emits "; text" on its own line.
func (e *Emitter) Comment(text string) {
	e.raw("    ; " + text)
}

// StoreLiteral stores v into the slot at off.
func (e *Emitter) StoreLiteral(v int64, off int) {
	if fitsImm32(v) {
		e.ins("mov %s, %d", slot(off), v)
		return
	}
	e.ins("mov rax, %d", v)
	e.ins("mov %s, rax", slot(off))
}

// CopySlot copies the slot at src into the slot at dst.
func (e *Emitter) CopySlot(dst, src int) {
	e.ins("mov rax, %s", slot(src))
	e.ins("mov %s, rax", slot(dst))
}

// AddLiteral adds v to the slot at off in place.
func (e *Emitter) AddLiteral(off int, v int64) {
	if fitsImm32(v) {
		e.ins("add %s, %d", slot(off), v)
		return
	}
	e.ins("mov rax, %d", v)
	e.ins("add %s, rax", slot(off))
}

// SubLiteral subtracts v from the slot at off in place.
func (e *Emitter) SubLiteral(off int, v int64) {
	if fitsImm32(v) {
		e.ins("sub %s, %d", slot(off), v)
		return
	}
	e.ins("mov rax, %d", v)
	e.ins("sub %s, rax", slot(off))
}

// AddSlot adds the slot at src to the slot at dst in place.
func (e *Emitter) AddSlot(dst, src int) {
	e.ins("mov rax, %s", slot(src))
	e.ins("add %s, rax", slot(dst))
}

// SubSlot subtracts the slot at src from the slot at dst in place.
func (e *Emitter) SubSlot(dst, src int) {
	e.ins("mov rax, %s", slot(src))
	e.ins("sub %s, rax", slot(dst))
}

// ReadInto emits a scanf("%ld", &slot) call targeting the slot at off.
func (e *Emitter) ReadInto(off int) {
	e.ins("lea rsi, [rbp-%d]", off+8)
	e.ins("lea rdi, [rel infmt]")
	e.ins("xor eax, eax")
	e.ins("call scanf")
}

// WriteSlot emits a printf("%ld\n", slot) call for the slot at off.
func (e *Emitter) WriteSlot(off int) {
	e.ins("mov rsi, %s", slot(off))
	e.ins("lea rdi, [rel outfmt]")
	e.ins("xor eax, eax")
	e.ins("call printf")
}

// WriteLiteral emits a printf("%ld\n", v) call.
func (e *Emitter) WriteLiteral(v int64) {
	e.ins("mov rsi, %d", v)
	e.ins("lea rdi, [rel outfmt]")
	e.ins("xor eax, eax")
	e.ins("call printf")
}

// Text returns the assembly emitted so far.
func (e *Emitter) Text() string {
	return strings.Join(e.lines, "\n") + "\n"
}

func (e *Emitter) ins(format string, args ...any) {
	e.lines = append(e.lines, "    "+fmt.Sprintf(format, args...))
}

func (e *Emitter) raw(line string) {
	e.lines = append(e.lines, line)
}

// slot renders the memory operand for the 8-byte slot at off. Offset 0 is
// the slot nearest rbp, so the displacement is off+8.
func slot(off int) string {
	return fmt.Sprintf("qword [rbp-%d]", off+8)
}

// fitsImm32 reports whether v can be a 32-bit immediate, the widest x86-64
// allows on memory-operand mov/add/sub.
func fitsImm32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
