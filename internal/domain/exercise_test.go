package domain

import "testing"

func TestExerciseFilter_Matches(t *testing.T) {
	ex := &Exercise{ID: "3", Difficulty: DifficultyIntermediate, Topic: "Arrays"}

	tests := []struct {
		name   string
		filter ExerciseFilter
		want   bool
	}{
		{"zero filter", ExerciseFilter{}, true},
		{"all sentinels", ExerciseFilter{Difficulty: FilterAll, Topic: FilterAll}, true},
		{"difficulty match", ExerciseFilter{Difficulty: DifficultyIntermediate}, true},
		{"difficulty mismatch", ExerciseFilter{Difficulty: DifficultyBeginner}, false},
		{"topic match", ExerciseFilter{Topic: "Arrays"}, true},
		{"topic mismatch", ExerciseFilter{Topic: "Functions"}, false},
		{"both match", ExerciseFilter{Difficulty: DifficultyIntermediate, Topic: "Arrays"}, true},
		{"one of two mismatch", ExerciseFilter{Difficulty: DifficultyIntermediate, Topic: "Algorithms"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(ex); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDifficulty_Valid(t *testing.T) {
	for _, d := range []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced} {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
	}
	if Difficulty("expert").Valid() {
		t.Error("expert should not be valid")
	}
}

func TestExercise_TestCaseLabel(t *testing.T) {
	ex := &Exercise{TestCases: []TestCase{{Input: "a", ExpectedOutput: "b"}}}
	if got := ex.TestCaseLabel(); got != "1 test case" {
		t.Errorf("TestCaseLabel() = %q", got)
	}
	ex.TestCases = append(ex.TestCases, TestCase{})
	if got := ex.TestCaseLabel(); got != "2 test cases" {
		t.Errorf("TestCaseLabel() = %q", got)
	}
}

func TestTutorial_Clamp(t *testing.T) {
	tut := &Tutorial{Steps: []TutorialStep{{ID: "1"}, {ID: "2"}, {ID: "3"}}}

	tests := []struct {
		in, want int
	}{
		{-1, 0},
		{0, 0},
		{2, 2},
		{7, 2},
	}
	for _, tt := range tests {
		if got := tut.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}

	empty := &Tutorial{}
	if _, ok := empty.Step(0); ok {
		t.Error("Step on empty tutorial should report false")
	}
}

func TestView_Valid(t *testing.T) {
	for _, v := range Views {
		if !v.Valid() {
			t.Errorf("%q should be valid", v)
		}
	}
	if View("home").Valid() {
		t.Error("home should not be a view")
	}
	if ViewAIHelp.Label() != "AI Assistant" {
		t.Errorf("ai-help label = %q", ViewAIHelp.Label())
	}
}

func TestIssueSummary(t *testing.T) {
	if got := IssueSummary(nil); got != "No issues" {
		t.Errorf("IssueSummary(nil) = %q", got)
	}
	one := []Diagnostic{{Line: 1, Message: "Missing semicolon", Severity: SeverityWarning}}
	if got := IssueSummary(one); got != "1 issue" {
		t.Errorf("IssueSummary(1) = %q", got)
	}
	two := append(one, Diagnostic{Line: 2, Message: "Missing opening brace", Severity: SeverityError})
	if got := IssueSummary(two); got != "2 issues" {
		t.Errorf("IssueSummary(2) = %q", got)
	}
}
