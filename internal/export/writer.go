package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// LuaExt is the extension DirWriter appends to logical file names.
const LuaExt = ".lua"

// Writer persists one rendered file under a logical name.
type Writer interface {
	Write(name string, content []byte) error
}

// DirWriter writes files into Dir. Each file is written to a temporary
// file first and renamed into place, so a failed write never leaves a
// truncated file behind.
type DirWriter struct {
	Dir string
}

var _ Writer = (*DirWriter)(nil)

// NewDirWriter creates a DirWriter for dir.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{Dir: dir}
}

// Write stores content as <Dir>/<name>.lua.
func (w *DirWriter) Write(name string, content []byte) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name %q", name)
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(w.Dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	dest := filepath.Join(w.Dir, name+LuaExt)

	if err := writeAtomic(dest, content); err != nil {
		return fmt.Errorf("writing file %s: %w", dest, err)
	}

	return nil
}

func writeAtomic(dest string, content []byte) error {
	dir := filepath.Dir(dest)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}

	tmpPath := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return err
	}

	if err := tmp.Chmod(filePerm); err != nil {
		return fail(err)
	}

	if _, err := tmp.Write(content); err != nil {
		return fail(err)
	}

	if err := tmp.Sync(); err != nil {
		return fail(err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}

// MemWriter keeps written files in memory, keyed by logical name.
type MemWriter struct {
	Files map[string][]byte
}

var _ Writer = (*MemWriter)(nil)

func (w *MemWriter) Write(name string, content []byte) error {
	if w.Files == nil {
		w.Files = map[string][]byte{}
	}

	w.Files[name] = append([]byte(nil), content...)

	return nil
}
