package runtimesynth_test

import (
	"strings"
	"testing"

	"github.com/joosc/compiler/internal/runtimesynth"
)

// TestFilenamesMatchEnclosingType mirrors internal/weeder's
// filename-matches-type-name check (structure.go's baseName/expected
// logic) without importing the whole pipeline: every file's basename
// must be "<public class Name>.java".
func TestFilenamesMatchEnclosingType(t *testing.T) {
	for _, f := range runtimesynth.Files() {
		base := f.Name
		if i := strings.LastIndexByte(base, '/'); i >= 0 {
			base = base[i+1:]
		}
		name := strings.TrimSuffix(base, ".java")
		if !strings.Contains(f.Content, "class "+name+" ") && !strings.Contains(f.Content, "class "+name+"\n") {
			t.Errorf("%s: content does not declare class %s", f.Name, name)
		}
	}
}

func TestFilesAreNonEmptyAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range runtimesynth.Files() {
		if f.Content == "" {
			t.Errorf("%s: empty content", f.Name)
		}
		if seen[f.Name] {
			t.Errorf("duplicate file name %s", f.Name)
		}
		seen[f.Name] = true
	}
}
