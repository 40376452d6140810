package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/afawcett/flowextensions/pkg/api"
)

// SQLite is a record store backed by a SQL database. The table carries no
// uniqueness constraint on name, so a mis-administered table can hold
// several records with the same name, just like the hosted platform
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// NewSQLite creates a SQLite-backed store using the provided database
// handle. The schema is created if it does not exist. The caller is
// responsible for registering a driver such as modernc.org/sqlite
func NewSQLite(db *sql.DB) (*SQLite, error) {
	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS config_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		fields TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_config_records_name
		ON config_records (name);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Put stores a record, replacing any existing records with the same name
func (s *SQLite) Put(ctx context.Context, rec *api.ConfigRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	fields, err := encodeFields(rec.Fields)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM config_records WHERE name = ?`, string(rec.Name),
	); err != nil {
		return fmt.Errorf("failed to replace record: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO config_records (name, fields) VALUES (?, ?)`,
		string(rec.Name), fields,
	); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return tx.Commit()
}

// Add stores a record without replacing existing ones, so several records
// may end up sharing a name
func (s *SQLite) Add(ctx context.Context, rec *api.ConfigRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	fields, err := encodeFields(rec.Fields)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO config_records (name, fields) VALUES (?, ?)`,
		string(rec.Name), fields,
	); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}

// Delete removes every record with the given name
func (s *SQLite) Delete(ctx context.Context, name api.Name) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM config_records WHERE name = ?`, string(name))
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}
	return nil
}

// Query returns every record with the given name in insertion order
func (s *SQLite) Query(
	ctx context.Context, name api.Name,
) ([]*api.ConfigRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, fields FROM config_records
		 WHERE name = ? ORDER BY id`,
		string(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanRecords(rows)
}

// List returns every stored record sorted by name
func (s *SQLite) List(ctx context.Context) ([]*api.ConfigRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, fields FROM config_records ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*api.ConfigRecord, error) {
	var res []*api.ConfigRecord
	for rows.Next() {
		var name, fields string
		if err := rows.Scan(&name, &fields); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var decoded map[api.Name]string
		if err := json.Unmarshal([]byte(fields), &decoded); err != nil {
			return nil, fmt.Errorf(
				"failed to decode record fields: %w", err)
		}
		res = append(res, &api.ConfigRecord{
			Name:   api.Name(name),
			Fields: decoded,
		})
	}
	return res, rows.Err()
}

func encodeFields(fields map[api.Name]string) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode record fields: %w", err)
	}
	return string(data), nil
}
