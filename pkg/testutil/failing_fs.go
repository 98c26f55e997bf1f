package testutil

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/vimdot/pkg/types"
)

// Operations FailingFS can fail
const (
	OpWrite  = "write"
	OpRename = "rename"
	OpOpen   = "open"
	OpRead   = "read"
	OpChmod  = "chmod"
	OpMkdir  = "mkdir"
)

// FailingFS wraps a types.FS and returns injected errors for chosen
// operation/path pairs. Everything else is passed through.
type FailingFS struct {
	types.FS
	failures map[string]error
}

// NewFailingFS wraps base
func NewFailingFS(base types.FS) *FailingFS {
	return &FailingFS{FS: base, failures: make(map[string]error)}
}

// Fail makes op on path return err
func (f *FailingFS) Fail(op, path string, err error) *FailingFS {
	f.failures[op+":"+filepath.Clean(path)] = err
	return f
}

func (f *FailingFS) injected(op, path string) error {
	if err, ok := f.failures[op+":"+filepath.Clean(path)]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

func (f *FailingFS) ReadFile(name string) ([]byte, error) {
	if err := f.injected(OpRead, name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FailingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.injected(OpWrite, name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FailingFS) OpenFile(name string, flag int, perm fs.FileMode) (types.File, error) {
	if err := f.injected(OpOpen, name); err != nil {
		return nil, err
	}
	return f.FS.OpenFile(name, flag, perm)
}

func (f *FailingFS) Chmod(name string, mode fs.FileMode) error {
	if err := f.injected(OpChmod, name); err != nil {
		return err
	}
	return f.FS.Chmod(name, mode)
}

func (f *FailingFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.injected(OpMkdir, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FailingFS) Rename(oldpath, newpath string) error {
	if err := f.injected(OpRename, oldpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}
