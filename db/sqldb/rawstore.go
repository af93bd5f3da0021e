package sqldb

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"
)

// RawSQLStore holds raw statements by "<group>.<name>"
type RawSQLStore struct {
	stmts map[string]string
}

func NewRawStore() *RawSQLStore {
	return &RawSQLStore{stmts: make(map[string]string)}
}

func (s *RawSQLStore) Set(key string, rawStmt string) {
	s.stmts[key] = rawStmt
}

func (s *RawSQLStore) Get(key string) (string, bool) {
	stmt, exists := s.stmts[key]
	return stmt, exists
}

// MustGet is for keys that ship with the binary; a miss is a build defect
func (s *RawSQLStore) MustGet(key string) string {
	stmt, ok := s.stmts[key]
	if !ok {
		panic("sqldb: raw statement not loaded: " + key)
	}
	return stmt
}

func (s *RawSQLStore) GetAll() map[string]string {
	return s.stmts
}

type StoreGroupedStmtKey struct {
	Group    string
	StmtName string
}

func (k StoreGroupedStmtKey) String() string {
	return k.Group + "." + k.StmtName
}

// GroupFS is a set of statements under a `sql` directory
type GroupFS struct {
	Group string
	FS    fs.FS
}

// LoadGroup reads <name>.<dbtype> files as-is and <name>.sql files as standard SQL
// with `?` placeholders, converted for the dialect. A dialect file wins over a .sql one.
func LoadGroup(store *RawSQLStore, group GroupFS, dbtype string) error {
	files, err := fs.ReadDir(group.FS, "sql")
	if err != nil {
		return fmt.Errorf("failed to read embedded `sql` dir. %w", err)
	}
	prefix := PlaceholderPrefixForDBType[dbtype]
	loaded := map[string]bool{} // key -> from a dialect file
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		filename := f.Name()
		ext := path.Ext(filename)
		name := strings.TrimSuffix(filename, ext)
		ext = strings.TrimPrefix(ext, ".")
		if ext != dbtype && ext != "sql" {
			continue
		}
		data, err := fs.ReadFile(group.FS, path.Join("sql", filename))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filename, err)
		}
		key := StoreGroupedStmtKey{Group: group.Group, StmtName: name}.String()
		switch {
		case ext == dbtype:
			store.Set(key, string(data))
			loaded[key] = true
		case !loaded[key]:
			store.Set(key, ReplaceStaticPlaceholders(string(data), prefix))
			loaded[key] = false
		}
	}
	log.Printf("[INFO][%s] %d sql raw stmts loaded for group %s", dbtype, len(loaded), group.Group)
	return nil
}
