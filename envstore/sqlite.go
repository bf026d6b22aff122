package envstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers driver "sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS environments (
	name        TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	saved_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS declarations (
	env  TEXT NOT NULL,
	kind TEXT NOT NULL,
	name TEXT NOT NULL,
	text TEXT NOT NULL,
	PRIMARY KEY (env, kind, name)
);`

const (
	kindVariable = "variable"
	kindFunction = "function"
)

// SQLStore keeps named environments in an SQLite database.
type SQLStore struct {
	db *sql.DB
}

var _ Store = (*SQLStore)(nil)

// OpenSQLStore opens (or creates) an SQLite database at dsn, which may be a
// file path or ":memory:".
func OpenSQLStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open environment database: %w", err)
	}
	db.SetMaxOpenConns(1) // an in-memory database lives in its connection
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create environment tables: %w", err)
	}
	tracer().Debugf("opened environment database %s", dsn)
	return &SQLStore{db: db}, nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Save stores a snapshot under name, replacing a previous one.
func (s *SQLStore) Save(name string, snap *Snapshot) error {
	fp, err := snap.Fingerprint()
	if err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	_, err = tx.Exec(`INSERT OR REPLACE INTO environments (name, source, fingerprint, saved_at)
		VALUES (?, ?, ?, ?)`, name, snap.Source, fp, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("cannot save environment %s: %w", name, err)
	}
	if _, err = tx.Exec(`DELETE FROM declarations WHERE env = ?`, name); err != nil {
		return fmt.Errorf("cannot save environment %s: %w", name, err)
	}
	insert := func(kind string, decls map[string]string) error {
		for n, text := range decls {
			_, err := tx.Exec(`INSERT INTO declarations (env, kind, name, text) VALUES (?, ?, ?, ?)`,
				name, kind, n, text)
			if err != nil {
				return fmt.Errorf("cannot save %s %s: %w", kind, n, err)
			}
		}
		return nil
	}
	if err = insert(kindVariable, snap.Variables); err != nil {
		return err
	}
	if err = insert(kindFunction, snap.Functions); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	tracer().P("fingerprint", fp).Infof("saved environment %s", name)
	return nil
}

// Load retrieves the snapshot stored under name.
func (s *SQLStore) Load(name string) (*Snapshot, error) {
	snap := NewSnapshot("")
	err := s.db.QueryRow(`SELECT source FROM environments WHERE name = ?`, name).Scan(&snap.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no environment named %q", name)
	} else if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT kind, name, text FROM declarations WHERE env = ?`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var kind, n, text string
		if err = rows.Scan(&kind, &n, &text); err != nil {
			return nil, err
		}
		switch kind {
		case kindVariable:
			snap.Variables[n] = text
		case kindFunction:
			snap.Functions[n] = text
		}
	}
	return snap, rows.Err()
}

// Names lists the names of all stored environments, in order.
func (s *SQLStore) Names() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM environments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err = rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
