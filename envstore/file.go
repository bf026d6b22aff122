package envstore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Markers enclosing the source block of an environment file.
const (
	SourceBlockStart = "/* ***** SOURCE CODE BLOCK ***** */"
	SourceBlockEnd   = "/* ***** /SOURCE CODE BLOCK ***** */"
)

// FileStore saves snapshots as environment files in a directory.
type FileStore struct {
	Dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file store for directory dir. Names of absolute
// paths are used as they are.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (fs *FileStore) path(name string) string {
	if filepath.IsAbs(name) || fs.Dir == "" {
		return name
	}
	return filepath.Join(fs.Dir, name)
}

// Save writes a snapshot to file name, replacing an existing file.
func (fs *FileStore) Save(name string, snap *Snapshot) error {
	f, err := os.Create(fs.path(name))
	if err != nil {
		return fmt.Errorf("cannot save environment: %w", err)
	}
	w := bufio.NewWriter(f)
	if err = Encode(w, snap); err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("cannot save environment: %w", err)
	}
	tracer().Infof("saved environment to %s", fs.path(name))
	return nil
}

// Load reads a snapshot from file name.
func (fs *FileStore) Load(name string) (*Snapshot, error) {
	f, err := os.Open(fs.path(name))
	if err != nil {
		return nil, fmt.Errorf("cannot load environment: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes a snapshot in environment file format.
func Encode(w io.Writer, snap *Snapshot) error {
	var b strings.Builder
	b.WriteString(SourceBlockStart + "\n")
	if snap.Source != "" {
		b.WriteString(strings.TrimRight(snap.Source, "\n") + "\n")
	}
	b.WriteString(SourceBlockEnd + "\n\n")
	b.WriteString(snap.Declarations())
	_, err := io.WriteString(w, b.String())
	return err
}

// Decode reads a snapshot in environment file format. Input without a
// source block is read as declarations only.
func Decode(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	source, declarations := "", text
	if i := strings.Index(text, SourceBlockEnd); i >= 0 {
		source = strings.TrimPrefix(text[:i], SourceBlockStart)
		source = strings.TrimPrefix(source, "\n")
		source = strings.TrimRight(source, "\n")
		declarations = text[i+len(SourceBlockEnd):]
	}
	return ParseDeclarations(source, declarations)
}
