package domain

// Tutorial is an ordered sequence of steps
type Tutorial struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Steps       []TutorialStep `json:"steps"`
}

// TutorialStep is a single page of a tutorial
type TutorialStep struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Code       string     `json:"code,omitempty"`
	Hint       string     `json:"hint,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
}

// HasCode reports whether the step carries example code
func (s TutorialStep) HasCode() bool {
	return s.Code != ""
}

// HasHint reports whether the step carries a hint
func (s TutorialStep) HasHint() bool {
	return s.Hint != ""
}

// Len returns the number of steps
func (t *Tutorial) Len() int {
	return len(t.Steps)
}

// Step returns the step at index i, clamped to the valid range.
// The second return value is false when the tutorial has no steps.
func (t *Tutorial) Step(i int) (TutorialStep, bool) {
	if len(t.Steps) == 0 {
		return TutorialStep{}, false
	}
	return t.Steps[t.Clamp(i)], true
}

// Clamp bounds i to [0, len-1]
func (t *Tutorial) Clamp(i int) int {
	if i < 0 || len(t.Steps) == 0 {
		return 0
	}
	if i > len(t.Steps)-1 {
		return len(t.Steps) - 1
	}
	return i
}
