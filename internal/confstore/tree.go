package confstore

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"
)

type node struct {
	dirs   map[string]*node
	values map[string]any
}

func newNode() *node {
	return &node{
		dirs:   make(map[string]*node),
		values: make(map[string]any),
	}
}

// Tree is an in-memory store. It serves as its own snapshot, so writes made
// while a scan runs are visible to that scan.
type Tree struct {
	mu   sync.RWMutex
	root *node
}

func NewTree() *Tree {
	return &Tree{root: newNode()}
}

func (t *Tree) Snapshot() (Reader, error) { return t, nil }

// Set stores value under key, creating intermediate directories.
func (t *Tree) Set(key string, value any) error {
	dir, name, err := splitKey(key)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.root
	for _, seg := range segments(dir) {
		child, ok := n.dirs[seg]
		if !ok {
			child = newNode()
			n.dirs[seg] = child
		}
		n = child
	}
	n.values[name] = value
	return nil
}

// MkDir creates dir and its parents.
func (t *Tree) MkDir(dir string) error {
	clean, err := cleanPath(dir)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.root
	for _, seg := range segments(clean) {
		child, ok := n.dirs[seg]
		if !ok {
			child = newNode()
			n.dirs[seg] = child
		}
		n = child
	}
	return nil
}

// AllDirs lists child directories in lexicographic order. A missing
// directory has no children.
func (t *Tree) AllDirs(dir string) ([]string, error) {
	clean, err := cleanPath(dir)
	if err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.lookupDir(clean)
	if n == nil {
		return nil, nil
	}

	names := make([]string, 0, len(n.dirs))
	for name := range n.dirs {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]string, len(names))
	for i, name := range names {
		out[i] = path.Join(clean, name)
	}
	return out, nil
}

func (t *Tree) GetString(key string) (string, error) {
	v, err := t.get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, not string", ErrTypeMismatch, key, v)
	}
	return s, nil
}

func (t *Tree) GetBool(key string) (bool, error) {
	v, err := t.get(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is %T, not bool", ErrTypeMismatch, key, v)
	}
	return b, nil
}

func (t *Tree) get(key string) (any, error) {
	dir, name, err := splitKey(key)
	if err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.lookupDir(dir)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	v, ok := n.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

func (t *Tree) lookupDir(dir string) *node {
	n := t.root
	for _, seg := range segments(dir) {
		n = n.dirs[seg]
		if n == nil {
			return nil
		}
	}
	return n
}

func cleanPath(p string) (string, error) {
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("path %q is not absolute", p)
	}
	return path.Clean(p), nil
}

func splitKey(key string) (string, string, error) {
	clean, err := cleanPath(key)
	if err != nil {
		return "", "", err
	}
	if clean == "/" {
		return "", "", fmt.Errorf("key %q names the root directory", key)
	}
	dir, name := path.Split(clean)
	return path.Clean(dir), name, nil
}

func segments(dir string) []string {
	trimmed := strings.Trim(dir, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
