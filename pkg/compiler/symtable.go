package compiler

import (
	"fmt"
	"strings"
)

// SymbolTable maps identifiers to stack-slot offsets in a single flat frame.
// Slots are 8 bytes wide and handed out in first-assignment order; offset 0
// is the slot nearest rbp.
type SymbolTable struct {
	offsets  map[string]int
	names    []string
	frameMax int // high-water mark of bytes in use below rbp
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{offsets: make(map[string]int)}
}

// Alloc returns the slot offset for name, taking the next free slot the
// first time the name is seen. Allocating an existing name is a no-op.
func (st *SymbolTable) Alloc(name string) int {
	if off, ok := st.offsets[name]; ok {
		return off
	}
	off := 8 * len(st.names)
	st.offsets[name] = off
	st.names = append(st.names, name)
	st.touch(off)
	return off
}

// Resolve returns the slot offset for name and whether the name has been
// assigned or read into before.
func (st *SymbolTable) Resolve(name string) (int, bool) {
	off, ok := st.offsets[name]
	return off, ok
}

// Temp returns the offset of a scratch slot above the named slots. depth
// counts from 1; each expression nesting level gets its own slot. Temps are
// never recorded, so later statements reuse the same slots.
func (st *SymbolTable) Temp(depth int) int {
	off := 8*len(st.names) + 8*(depth-1)
	st.touch(off)
	return off
}

// Len returns the number of named slots.
func (st *SymbolTable) Len() int {
	return len(st.names)
}

// Names returns the identifiers in first-assignment order.
func (st *SymbolTable) Names() []string {
	out := make([]string, len(st.names))
	copy(out, st.names)
	return out
}

// FrameBytes returns the frame size covering every slot handed out so far,
// rounded up to a multiple of 16 so rsp stays aligned across the libc calls.
func (st *SymbolTable) FrameBytes() int {
	return (st.frameMax + 15) &^ 15
}

func (st *SymbolTable) touch(off int) {
	if off+8 > st.frameMax {
		st.frameMax = off + 8
	}
}

func (st *SymbolTable) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d symbols, frame %d bytes\n", len(st.names), st.FrameBytes())
	for _, name := range st.names {
		fmt.Fprintf(&sb, "  %s -> [rbp-%d]\n", name, st.offsets[name]+8)
	}
	return sb.String()
}
