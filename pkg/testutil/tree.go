package testutil

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/vimdot/pkg/types"
)

// FileTree represents a directory structure for testing. Values are either
// file content (string) or a nested FileTree.
type FileTree map[string]interface{}

// CreateFileTree recursively creates tree under basePath
func CreateFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to create file %s: %v", fullPath, err)
			}
		case FileTree:
			CreateFileTree(t, fs, fullPath, v)
		case map[string]interface{}:
			CreateFileTree(t, fs, fullPath, FileTree(v))
		default:
			t.Fatalf("Unsupported file tree entry %s: %T", name, content)
		}
	}
}

// ListFiles returns the relative paths of all regular files under root, sorted
func ListFiles(t *testing.T, fs types.FS, root string) []string {
	t.Helper()

	var out []string
	var walk func(dir, rel string)
	walk = func(dir, rel string) {
		entries, err := fs.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to list %s: %v", dir, err)
		}
		for _, e := range entries {
			childRel := filepath.Join(rel, e.Name())
			if e.IsDir() {
				walk(filepath.Join(dir, e.Name()), childRel)
				continue
			}
			out = append(out, filepath.ToSlash(childRel))
		}
	}
	walk(root, "")

	sort.Strings(out)
	return out
}
