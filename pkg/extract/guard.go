package extract

import (
	"github.com/importscout/importscout/pkg/importmodel"
)

// armState is the role of the guard arm currently open in a frame.
type armState int

const (
	armPrimary armState = iota
	armFallback
	armNeutral // else/finally: inside the construct but not a guarded arm.
)

// guardFrame is one open guard construct. Frames nest; the innermost frame
// decides the branch tag.
type guardFrame struct {
	indent int
	arm    armState
}

// guardTracker recognizes try-then-fallback guard constructs and tags
// statements with the arm they sit in. It is an iterative state machine
// over an explicit frame stack; arms close by dedent.
type guardTracker struct {
	g     Grammar
	stack []guardFrame
}

func newGuardTracker(g Grammar) *guardTracker {
	return &guardTracker{g: g}
}

// observe consumes one logical statement, updates guard state, and returns
// the branch tag for the statement itself.
func (t *guardTracker) observe(st *statement) importmodel.Branch {
	if t.g.GuardKeyword == "" {
		return importmodel.BranchNone
	}

	switch {
	case startsWithWord(st.text, t.g.GuardKeyword):
		t.closeFramesAt(st.indent)
		branch := t.currentBranch(st.indent)
		t.stack = append(t.stack, guardFrame{indent: st.indent, arm: armPrimary})

		return branch
	case startsWithWord(st.text, t.g.GuardArmKeyword):
		t.switchArm(st.indent, armFallback)

		return t.currentBranch(st.indent)
	case t.isNeutralKeyword(st.text):
		t.switchArm(st.indent, armNeutral)

		return t.currentBranch(st.indent)
	default:
		t.closeFramesAt(st.indent)

		return t.currentBranch(st.indent)
	}
}

// closeFramesAt pops every frame whose body the statement has dedented out
// of. A frame's body is strictly deeper than the frame's own indent.
func (t *guardTracker) closeFramesAt(indent int) {
	for len(t.stack) > 0 && indent <= t.stack[len(t.stack)-1].indent {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// switchArm moves the frame opened at exactly this indent into a new arm,
// closing any deeper frames first. An arm keyword with no matching frame is
// ignored; it belongs to some non-guard construct.
func (t *guardTracker) switchArm(indent int, arm armState) {
	for len(t.stack) > 0 && t.stack[len(t.stack)-1].indent > indent {
		t.stack = t.stack[:len(t.stack)-1]
	}

	if len(t.stack) == 0 || t.stack[len(t.stack)-1].indent != indent {
		return
	}

	t.stack[len(t.stack)-1].arm = arm
}

// currentBranch maps the innermost enclosing frame to a branch tag for a
// statement at the given indent.
func (t *guardTracker) currentBranch(indent int) importmodel.Branch {
	if len(t.stack) == 0 {
		return importmodel.BranchNone
	}

	top := t.stack[len(t.stack)-1]
	if indent <= top.indent {
		return importmodel.BranchNone
	}

	switch top.arm {
	case armPrimary:
		return importmodel.BranchPrimary
	case armFallback:
		return importmodel.BranchFallback
	case armNeutral:
		return importmodel.BranchNone
	default:
		return importmodel.BranchNone
	}
}

func (t *guardTracker) isNeutralKeyword(text string) bool {
	for _, kw := range t.g.GuardNeutralKeywords {
		if startsWithWord(text, kw) {
			return true
		}
	}

	return false
}
