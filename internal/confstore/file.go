package confstore

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
	plist "howett.net/plist"
)

// File is a Store backed by a TOML or plist document. Tables (dicts) become
// directories and scalar values become keys. The file is read again for every
// snapshot.
type File struct {
	path   string
	decode func([]byte) (map[string]any, error)
}

// NewFile picks a decoder from the file extension.
func NewFile(filePath string) (*File, error) {
	var decode func([]byte) (map[string]any, error)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".toml":
		decode = decodeTOML
	case ".plist":
		decode = decodePlist
	default:
		return nil, fmt.Errorf("unsupported store format %q (want .toml or .plist)", filepath.Ext(filePath))
	}
	return &File{path: filePath, decode: decode}, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Snapshot() (Reader, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("cannot read store file: %w", err)
	}
	doc, err := f.decode(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse store file %s: %w", f.path, err)
	}

	tree := NewTree()
	if err := tree.load("/", doc); err != nil {
		return nil, err
	}

	log.WithField("path", f.path).Trace("Loaded store snapshot")
	return tree, nil
}

// LoadFile reads a store document once into a Tree.
func LoadFile(filePath string) (*Tree, error) {
	f, err := NewFile(filePath)
	if err != nil {
		return nil, err
	}
	r, err := f.Snapshot()
	if err != nil {
		return nil, err
	}
	return r.(*Tree), nil
}

func (t *Tree) load(dir string, doc map[string]any) error {
	for name, v := range doc {
		if name == "" || strings.Contains(name, "/") {
			return fmt.Errorf("invalid entry name %q under %s", name, dir)
		}
		p := path.Join(dir, name)
		switch val := v.(type) {
		case map[string]any:
			if err := t.MkDir(p); err != nil {
				return err
			}
			if err := t.load(p, val); err != nil {
				return err
			}
		default:
			if err := t.Set(p, val); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeTOML(data []byte) (map[string]any, error) {
	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodePlist(data []byte) (map[string]any, error) {
	doc := make(map[string]any)
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
