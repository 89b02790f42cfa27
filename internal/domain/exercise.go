package domain

// Exercise represents a practice task shown in the exercise browser
type Exercise struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Difficulty    Difficulty `json:"difficulty"`
	Topic         string     `json:"topic"`
	EstimatedTime string     `json:"estimated_time"`
	Points        int        `json:"points"`
	StarterCode   string     `json:"starter_code"`
	Solution      string     `json:"solution"`
	TestCases     []TestCase `json:"test_cases"`
}

// TestCase pairs an input expression with the output it should produce
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

// Difficulty represents exercise difficulty level
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known difficulty levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// ExerciseFilter narrows the exercise browser. Empty fields (or "all") match everything.
type ExerciseFilter struct {
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Topic      string     `json:"topic,omitempty"`
}

// FilterAll is the sentinel value the browser uses for "no filter"
const FilterAll = "all"

// Matches reports whether the exercise passes the filter
func (f ExerciseFilter) Matches(e *Exercise) bool {
	if f.Difficulty != "" && string(f.Difficulty) != FilterAll && e.Difficulty != f.Difficulty {
		return false
	}
	if f.Topic != "" && f.Topic != FilterAll && e.Topic != f.Topic {
		return false
	}
	return true
}

// TestCaseLabel returns "1 test case" / "N test cases"
func (e *Exercise) TestCaseLabel() string {
	return pluralize(len(e.TestCases), "test case")
}
