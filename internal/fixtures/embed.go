// Package fixtures bundles the built-in exercise and tutorial content.
package fixtures

import (
	"embed"
	"io/fs"
)

//go:embed exercises/*.yaml tutorials/*.yaml
var content embed.FS

// Exercises returns the built-in exercise pack rooted at its pack.yaml
func Exercises() fs.FS {
	sub, err := fs.Sub(content, "exercises")
	if err != nil {
		panic(err)
	}
	return sub
}

// Tutorials returns the built-in tutorials directory
func Tutorials() fs.FS {
	sub, err := fs.Sub(content, "tutorials")
	if err != nil {
		panic(err)
	}
	return sub
}
