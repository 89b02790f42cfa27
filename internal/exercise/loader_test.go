package exercise

import (
	"testing"
	"testing/fstest"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"pack.yaml": {Data: []byte(`id: test-pack
name: Test Pack
version: "1.0.0"
language: javascript
exercises:
  - hello
  - loops
`)},
		"hello.yaml": {Data: []byte(`id: "10"
title: Hello
description: Say hello
difficulty: beginner
topic: Functions
estimated_time: 5 mins
points: 10
starter: |-
  function hello() {
  }
solution: |-
  function hello() {
    return 'hi';
  }
test_cases:
  - input: hello()
    expected_output: "'hi'"
`)},
		"loops.yaml": {Data: []byte(`id: "11"
title: Loops
difficulty: intermediate
topic: Control Flow
points: 20
starter: "for (;;) {}"
`)},
	}
}

func TestLoader_LoadPack(t *testing.T) {
	loader := NewLoader(testFS())

	pack, err := loader.LoadPack()
	if err != nil {
		t.Fatalf("LoadPack() error = %v", err)
	}
	if pack.ID != "test-pack" {
		t.Errorf("ID = %q, want %q", pack.ID, "test-pack")
	}
	if pack.Language != "javascript" {
		t.Errorf("Language = %q, want %q", pack.Language, "javascript")
	}
	if len(pack.Slugs) != 2 || pack.Slugs[0] != "hello" {
		t.Errorf("Slugs = %v", pack.Slugs)
	}
}

func TestLoader_LoadExercise(t *testing.T) {
	loader := NewLoader(testFS())

	ex, err := loader.LoadExercise("hello")
	if err != nil {
		t.Fatalf("LoadExercise() error = %v", err)
	}
	if ex.ID != "10" {
		t.Errorf("ID = %q", ex.ID)
	}
	if ex.Difficulty != domain.DifficultyBeginner {
		t.Errorf("Difficulty = %q", ex.Difficulty)
	}
	if ex.StarterCode != "function hello() {\n}" {
		t.Errorf("StarterCode = %q", ex.StarterCode)
	}
	if len(ex.TestCases) != 1 || ex.TestCases[0].ExpectedOutput != "'hi'" {
		t.Errorf("TestCases = %+v", ex.TestCases)
	}
}

func TestLoader_LoadExercise_Missing(t *testing.T) {
	loader := NewLoader(testFS())

	if _, err := loader.LoadExercise("nope"); err == nil {
		t.Error("expected error for missing exercise file")
	}
}

func TestLoader_LoadExercise_BadDifficulty(t *testing.T) {
	fsys := testFS()
	fsys["bad.yaml"] = &fstest.MapFile{Data: []byte("id: x\ndifficulty: expert\n")}

	if _, err := NewLoader(fsys).LoadExercise("bad"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestLoader_LoadPack_InvalidYAML(t *testing.T) {
	fsys := fstest.MapFS{"pack.yaml": {Data: []byte("id: [unclosed")}}

	if _, err := NewLoader(fsys).LoadPack(); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoader_LoadAll_Order(t *testing.T) {
	_, exercises, err := NewLoader(testFS()).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(exercises) != 2 {
		t.Fatalf("len = %d, want 2", len(exercises))
	}
	if exercises[0].ID != "10" || exercises[1].ID != "11" {
		t.Errorf("order = %s, %s", exercises[0].ID, exercises[1].ID)
	}
}
