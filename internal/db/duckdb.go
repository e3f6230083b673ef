package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/jcdickinson/seedoc/internal/reflection"
)

// DB is the persistent project index: the classes, methods and aliases of
// the last imported reflection dump, plus the render cache index.
type DB struct {
	conn *sql.DB
}

func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_import_id START 1;`,

		`CREATE TABLE IF NOT EXISTS imports (
			id INTEGER PRIMARY KEY,
			source TEXT NOT NULL,
			class_count INTEGER NOT NULL,
			imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS classes (
			name TEXT PRIMARY KEY,
			parent TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS methods (
			class_name TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (class_name, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_methods_class ON methods (class_name)`,

		`CREATE TABLE IF NOT EXISTS aliases (
			class_name TEXT NOT NULL,
			alias TEXT NOT NULL,
			target TEXT NOT NULL,
			PRIMARY KEY (class_name, alias)
		)`,

		`CREATE TABLE IF NOT EXISTS render_cache (
			cache_key TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, q := range queries {
		if _, err := db.conn.Exec(q); err != nil {
			return fmt.Errorf("executing %q: %w", q, err)
		}
	}
	return nil
}

// --- Project operations ---

type Import struct {
	ID         int
	Source     string
	ClassCount int
	ImportedAt time.Time
}

// ImportDump replaces the stored project with dump. The render cache is
// cleared since links in cached HTML may no longer resolve the same way.
// The dump is validated by building a project before anything is written.
func (db *DB) ImportDump(source string, dump *reflection.Dump) (*Import, error) {
	project, err := reflection.New(dump)
	if err != nil {
		return nil, fmt.Errorf("validating dump: %w", err)
	}
	classes := project.Classes()

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"methods", "aliases", "classes", "render_cache"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return nil, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, c := range classes {
		if _, err := tx.Exec(
			`INSERT INTO classes (name, parent, description) VALUES (?, ?, ?)`,
			c.Name(), c.ParentName(), c.Description(),
		); err != nil {
			return nil, fmt.Errorf("inserting class %s: %w", c.Name(), err)
		}

		for i, m := range c.Methods() {
			if _, err := tx.Exec(
				`INSERT INTO methods (class_name, name, position, description) VALUES (?, ?, ?, ?)`,
				c.Name(), m.Name(), i, m.Description(),
			); err != nil {
				return nil, fmt.Errorf("inserting method %s: %w", m, err)
			}
		}

		aliases := c.Aliases()
		keys := make([]string, 0, len(aliases))
		for k := range aliases {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, alias := range keys {
			if _, err := tx.Exec(
				`INSERT INTO aliases (class_name, alias, target) VALUES (?, ?, ?)`,
				c.Name(), alias, aliases[alias],
			); err != nil {
				return nil, fmt.Errorf("inserting alias %s in %s: %w", alias, c.Name(), err)
			}
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO imports (id, source, class_count) VALUES (nextval('seq_import_id'), ?, ?)`,
		source, len(classes),
	); err != nil {
		return nil, fmt.Errorf("recording import: %w", err)
	}

	var imp Import
	if err := tx.QueryRow(
		`SELECT id, source, class_count, imported_at FROM imports WHERE id = currval('seq_import_id')`,
	).Scan(&imp.ID, &imp.Source, &imp.ClassCount, &imp.ImportedAt); err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	return &imp, nil
}

// LastImport returns the most recent import, or nil if nothing was imported.
func (db *DB) LastImport() (*Import, error) {
	var imp Import
	err := db.conn.QueryRow(
		`SELECT id, source, class_count, imported_at FROM imports ORDER BY id DESC LIMIT 1`,
	).Scan(&imp.ID, &imp.Source, &imp.ClassCount, &imp.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &imp, nil
}

// LoadDump reads the stored project back as a dump.
func (db *DB) LoadDump() (*reflection.Dump, error) {
	dump := &reflection.Dump{}
	index := make(map[string]int)

	rows, err := db.conn.Query(`SELECT name, parent, description FROM classes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	for rows.Next() {
		var cd reflection.ClassDump
		if err := rows.Scan(&cd.Name, &cd.Parent, &cd.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning class: %w", err)
		}
		index[cd.Name] = len(dump.Classes)
		dump.Classes = append(dump.Classes, cd)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.conn.Query(`SELECT class_name, name, description FROM methods ORDER BY class_name, position`)
	if err != nil {
		return nil, fmt.Errorf("querying methods: %w", err)
	}
	for rows.Next() {
		var className string
		var md reflection.MethodDump
		if err := rows.Scan(&className, &md.Name, &md.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning method: %w", err)
		}
		if i, ok := index[className]; ok {
			dump.Classes[i].Methods = append(dump.Classes[i].Methods, md)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.conn.Query(`SELECT class_name, alias, target FROM aliases`)
	if err != nil {
		return nil, fmt.Errorf("querying aliases: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var className, alias, target string
		if err := rows.Scan(&className, &alias, &target); err != nil {
			return nil, fmt.Errorf("scanning alias: %w", err)
		}
		i, ok := index[className]
		if !ok {
			continue
		}
		if dump.Classes[i].Aliases == nil {
			dump.Classes[i].Aliases = make(map[string]string)
		}
		dump.Classes[i].Aliases[alias] = target
	}
	return dump, rows.Err()
}

// LoadProject builds a project from the stored dump.
func (db *DB) LoadProject() (*reflection.Project, error) {
	dump, err := db.LoadDump()
	if err != nil {
		return nil, err
	}
	return reflection.New(dump)
}

// --- Render cache operations ---

// GetRenderCache returns the CAS hash of the HTML cached under key.
func (db *DB) GetRenderCache(key string) (string, bool, error) {
	var hash string
	err := db.conn.QueryRow(`SELECT content_hash FROM render_cache WHERE cache_key = ?`, key).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading render cache: %w", err)
	}
	return hash, true, nil
}

func (db *DB) PutRenderCache(key, contentHash string) error {
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO render_cache (cache_key, content_hash) VALUES (?, ?)`,
		key, contentHash,
	)
	if err != nil {
		return fmt.Errorf("writing render cache: %w", err)
	}
	return nil
}

func (db *DB) ClearRenderCache() error {
	_, err := db.conn.Exec(`DELETE FROM render_cache`)
	return err
}

func (db *DB) CountRenderCache() (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM render_cache`).Scan(&n)
	return n, err
}
