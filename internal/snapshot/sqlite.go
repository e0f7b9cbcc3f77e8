package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"shortlinks/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	position   INTEGER NOT NULL,
	id         TEXT NOT NULL,
	short_code TEXT NOT NULL,
	data       TEXT NOT NULL,
	PRIMARY KEY (position)
);`

// SQLite persists the snapshot in a single-table SQLite database. Each
// record is stored as one JSON row; Save replaces the whole table inside
// a transaction, keeping full-snapshot semantics.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) a SQLite snapshot store
// at the given path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reads all persisted records in stored order.
func (s *SQLite) Load() ([]*domain.URLRecord, error) {
	rows, err := s.db.Query(`SELECT data FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	var records []*domain.URLRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		var record domain.URLRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, fmt.Errorf("decoding snapshot row: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot rows: %w", err)
	}
	return records, nil
}

// Save atomically replaces the persisted snapshot.
func (s *SQLite) Save(records []*domain.URLRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO records (position, id, short_code, data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", record.ID, err)
		}
		if _, err := stmt.Exec(i, record.ID, record.ShortCode, string(data)); err != nil {
			return fmt.Errorf("inserting record %s: %w", record.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}
