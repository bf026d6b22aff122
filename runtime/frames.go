package runtime

import (
	"fmt"

	"github.com/npillmayer/procalc/ast"
)

// This module implements the program stack: a stack of frames for control
// transfers in flight. Frames are pushed for branches, loop iterations and
// function calls.

// Frame is a program stack entry, remembering the statement which
// transferred control and the scope active at that time.
type Frame struct {
	Name   string
	Node   ast.Node
	Scope  *Scope
	Parent *Frame
}

// NewFrame creates a new program frame.
func NewFrame(nm string, node ast.Node, scope *Scope) *Frame {
	return &Frame{
		Name:  nm,
		Node:  node,
		Scope: scope,
	}
}

func (fr *Frame) String() string {
	return fmt.Sprintf("<frame %s -> %v>", fr.Name, fr.Scope)
}

// IsRoot is a predicate: Is this a root frame?
func (fr *Frame) IsRoot() bool {
	return (fr.Parent == nil)
}

// TraceLine renders the frame's statement as a trace entry.
func (fr *Frame) TraceLine() string {
	if fr.Node == nil {
		return fmt.Sprintf("<%s>", fr.Name)
	}
	return fmt.Sprintf("line %d: %s", fr.Node.Line(), ast.FirstLine(fr.Node))
}

// ---------------------------------------------------------------------------

// FrameStack is a stack of program frames.
type FrameStack struct {
	frameBase *Frame
	frameTOS  *Frame
	size      int
}

// Current gets the current frame of a stack (TOS).
func (fst *FrameStack) Current() *Frame {
	if fst.frameTOS == nil {
		panic("attempt to access frame from empty program stack")
	}
	return fst.frameTOS
}

// Size returns the number of frames on the stack.
func (fst *FrameStack) Size() int {
	return fst.size
}

// Push pushes a new frame as TOS, having the recent TOS as its parent.
func (fst *FrameStack) Push(nm string, node ast.Node, scope *Scope) *Frame {
	fp := fst.frameTOS
	newfr := NewFrame(nm, node, scope)
	newfr.Parent = fp
	if fp == nil {
		fst.frameBase = newfr
	}
	fst.frameTOS = newfr
	fst.size++
	tracer().P("frame", newfr.Name).Debugf("pushing program frame")
	return newfr
}

// Pop pops the top-most frame. Returns the popped frame.
func (fst *FrameStack) Pop() *Frame {
	if fst.frameTOS == nil {
		panic("attempt to pop frame from empty program stack")
	}
	fr := fst.frameTOS
	tracer().Debugf("popping program frame [%s]", fr.Name)
	fst.frameTOS = fst.frameTOS.Parent
	if fst.frameTOS == nil {
		fst.frameBase = nil
	}
	fst.size--
	return fr
}

// Trace renders the frames as trace lines, outermost first.
func (fst *FrameStack) Trace() []string {
	trace := make([]string, fst.size)
	i := fst.size - 1
	for fr := fst.frameTOS; fr != nil; fr = fr.Parent {
		trace[i] = fr.TraceLine()
		i--
	}
	return trace
}
