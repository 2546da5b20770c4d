package records

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite" // SQLite driver
)

// identRe matches safe SQL identifiers. Table and column names are
// interpolated into statements, so anything else is rejected.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSourceConfig configures a SQLite record source.
type SQLiteSourceConfig struct {
	// Path is the database file path.
	Path string

	// Table is the table to read records from.
	Table string

	// Type is the schema type name assigned to loaded records.
	Type string

	// IDColumn, when set, names the column used as the record ID.
	// The column still appears in the record's values.
	IDColumn string
}

// SQLiteSource loads records from a SQLite table. Every row becomes one
// Item, with column values keyed by column name. Rows read from a
// database are treated as persisted.
type SQLiteSource struct {
	config SQLiteSourceConfig
	db     *sql.DB
}

// NewSQLiteSource opens the database and validates the configuration.
func NewSQLiteSource(config SQLiteSourceConfig) (*SQLiteSource, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if config.Type == "" {
		return nil, fmt.Errorf("record type cannot be empty")
	}
	if !identRe.MatchString(config.Table) {
		return nil, fmt.Errorf("invalid table name %q", config.Table)
	}
	if config.IDColumn != "" && !identRe.MatchString(config.IDColumn) {
		return nil, fmt.Errorf("invalid id column name %q", config.IDColumn)
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &SQLiteSource{config: config, db: db}, nil
}

// Load reads every row of the configured table.
func (s *SQLiteSource) Load(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", s.config.Table))
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", s.config.Table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var items []Item
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		item := Item{
			Type:      s.config.Type,
			Persisted: true,
			Values:    make(map[string]interface{}, len(columns)),
		}
		for i, col := range columns {
			v := values[i]
			// Drivers hand back []byte for TEXT columns.
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			item.Values[col] = v
			if col == s.config.IDColumn {
				item.ID = fmt.Sprintf("%v", v)
			}
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return items, nil
}

// Close releases the database connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
