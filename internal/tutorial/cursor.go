package tutorial

import (
	"fmt"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

// Cursor is a position within a tutorial. It is a value type; every
// movement returns a new cursor.
type Cursor struct {
	Index    int  `json:"index"`
	ShowHint bool `json:"show_hint"`
}

// Next advances one step. At the last step it is a no-op.
func (c Cursor) Next(t *domain.Tutorial) Cursor {
	if c.Index >= t.Len()-1 {
		return c
	}
	return Cursor{Index: c.Index + 1}
}

// Previous moves back one step. At the first step it is a no-op.
func (c Cursor) Previous(t *domain.Tutorial) Cursor {
	if c.Index <= 0 {
		return c
	}
	return Cursor{Index: t.Clamp(c.Index - 1)}
}

// ToggleHint flips hint visibility without moving
func (c Cursor) ToggleHint() Cursor {
	c.ShowHint = !c.ShowHint
	return c
}

// Step returns the current step
func (c Cursor) Step(t *domain.Tutorial) (domain.TutorialStep, bool) {
	return t.Step(c.Index)
}

// InsertExample returns the buffer that results from inserting the current
// step's example code: the code itself, or buffer unchanged when the step
// has none.
func (c Cursor) InsertExample(t *domain.Tutorial, buffer string) string {
	step, ok := c.Step(t)
	if !ok || !step.HasCode() {
		return buffer
	}
	return step.Code
}

// IsFirst reports whether the cursor is on the first step
func (c Cursor) IsFirst() bool {
	return c.Index <= 0
}

// IsLast reports whether the cursor is on the last step
func (c Cursor) IsLast(t *domain.Tutorial) bool {
	return c.Index >= t.Len()-1
}

// Progress returns (index+1)/len as a percentage
func (c Cursor) Progress(t *domain.Tutorial) float64 {
	if t.Len() == 0 {
		return 0
	}
	return float64(t.Clamp(c.Index)+1) / float64(t.Len()) * 100
}

// Label renders "Step i of n"
func (c Cursor) Label(t *domain.Tutorial) string {
	return fmt.Sprintf("Step %d of %d", t.Clamp(c.Index)+1, t.Len())
}
