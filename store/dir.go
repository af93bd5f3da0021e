package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const dirFileExt = ".json"

// Dir keeps one file per key under Root. File names are the path-escaped key.
type Dir struct {
	Root string
}

var _ Backend = (*Dir)(nil)

func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("store: create dir %s: %w", root, err)
	}
	return &Dir{Root: root}, nil
}

func (d *Dir) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." {
		return "", fmt.Errorf("store: invalid key %q", key)
	}
	return filepath.Join(d.Root, url.PathEscape(key)+dirFileExt), nil
}

func (d *Dir) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := d.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// Put writes a temp file then renames it, so a reader never sees a partial record
func (d *Dir) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := d.path(key)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(d.Root, ".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err = f.Write(value); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err = os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (d *Dir) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := d.path(key)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (d *Dir) All(ctx context.Context) (map[string][]byte, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, dirFileExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, dirFileExt))
		if err != nil {
			log.Printf("[WARN][STORE] skipping %s: %v", name, err)
			continue
		}
		b, err := os.ReadFile(filepath.Join(d.Root, name))
		if err != nil {
			return nil, err
		}
		out[key] = b
	}
	return out, nil
}
