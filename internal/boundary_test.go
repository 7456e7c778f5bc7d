package boundary_test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/comalice/malariasim"

// The model packages stay free of I/O adapters: they may import the standard
// library and the listed modules, never internal/ or output libraries.
func TestCoreImportBoundary(t *testing.T) {
	tests := []struct {
		dir     string
		allowed []string
	}{
		{"..", []string{"gonum.org/v1/gonum/"}},
		{"../simulation", []string{"gonum.org/v1/gonum/", "golang.org/x/sync/", modulePath}},
		{"../testutil", []string{modulePath}},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(filepath.Clean(tt.dir)), func(t *testing.T) {
			files, err := filepath.Glob(filepath.Join(tt.dir, "*.go"))
			if err != nil {
				t.Fatal(err)
			}
			fset := token.NewFileSet()
			checked := 0
			for _, fn := range files {
				if strings.HasSuffix(fn, "_test.go") {
					continue
				}
				f, err := parser.ParseFile(fset, fn, nil, parser.ImportsOnly)
				if err != nil {
					t.Fatalf("parse %s: %v", fn, err)
				}
				checked++
				for _, imp := range f.Imports {
					path, _ := strconv.Unquote(imp.Path.Value)
					if !importAllowed(path, tt.allowed) {
						t.Errorf("%s imports %s", fn, path)
					}
				}
			}
			if checked == 0 {
				t.Fatalf("no Go files found in %s", tt.dir)
			}
		})
	}
}

func importAllowed(path string, allowed []string) bool {
	first, _, _ := strings.Cut(path, "/")
	if !strings.Contains(first, ".") {
		return true // standard library
	}
	if strings.Contains(path, "/internal/") {
		return false
	}
	for _, prefix := range allowed {
		if path == prefix || strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
