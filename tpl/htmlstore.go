package tpl

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"os"
	"path"
	"strings"
	"unicode/utf8"
)

const FileSuffix = ".gohtml"

type HTMLTemplateStore struct {
	Base     map[string]*template.Template // each file → one template
	Combined map[string]*template.Template // composed templates
	funcs    template.FuncMap
}

func NewHTMLTemplateStore(funcs template.FuncMap) *HTMLTemplateStore {
	return &HTMLTemplateStore{
		Base:     make(map[string]*template.Template),
		Combined: make(map[string]*template.Template),
		funcs:    funcs,
	}
}

// LoadBaseTemplatesFromDir loads every .gohtml file below a directory on disk
func (s *HTMLTemplateStore) LoadBaseTemplatesFromDir(tplRoot string) error {
	return s.LoadBaseTemplates(os.DirFS(tplRoot), ".")
}

// LoadBaseTemplates walks tplRoot inside fsys. Keys are slash paths relative to tplRoot without the suffix.
func (s *HTMLTemplateStore) LoadBaseTemplates(fsys fs.FS, tplRoot string) error {
	tplRoot = path.Clean(tplRoot)
	count := 0
	err := fs.WalkDir( // Pre-order Depth-first Traversal
		fsys,
		tplRoot,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			// Skip Hidden Files & Hidden Directories
			if strings.HasPrefix(name, ".") && p != tplRoot {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(p, FileSuffix) {
				return nil
			}
			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return err
			}
			if !utf8.Valid(data) {
				return fmt.Errorf("file %s is not valid UTF-8", p)
			}
			rel := strings.TrimPrefix(p, tplRoot+"/")
			if tplRoot == "." {
				rel = p
			}
			key := strings.TrimSuffix(rel, FileSuffix)
			if _, exists := s.Base[key]; exists {
				return fmt.Errorf("duplicate template key detected: %s (file=%s)", key, p)
			}
			t, err := template.New(key).Funcs(s.funcs).Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse error in %s: %w", p, err)
			}
			s.Base[key] = t
			count++
			return nil
		},
	)
	if err != nil {
		return err
	}
	log.Printf("[INFO][TEMPLATE] Loaded %d templates from %s", count, tplRoot)
	return nil
}

// Combine composes a named template: the first key is the entry point,
// the rest contribute their {{define}} blocks
func (s *HTMLTemplateStore) Combine(name string, keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("combine %s: no templates", name)
	}
	root, ok := s.Base[keys[0]]
	if !ok {
		return fmt.Errorf("combine %s: unknown template %s", name, keys[0])
	}
	combined, err := root.Clone()
	if err != nil {
		return fmt.Errorf("combine %s: %w", name, err)
	}
	for _, key := range keys[1:] {
		part, ok := s.Base[key]
		if !ok {
			return fmt.Errorf("combine %s: unknown template %s", name, key)
		}
		for _, sub := range part.Templates() {
			if sub.Tree == nil {
				continue
			}
			if _, err = combined.AddParseTree(sub.Name(), sub.Tree.Copy()); err != nil {
				return fmt.Errorf("combine %s: %s: %w", name, key, err)
			}
		}
	}
	s.Combined[name] = combined
	return nil
}

// Lookup prefers a combined template over a base one of the same name
func (s *HTMLTemplateStore) Lookup(name string) (*template.Template, bool) {
	if t, ok := s.Combined[name]; ok {
		return t, true
	}
	t, ok := s.Base[name]
	return t, ok
}
