// Package warehouse reads board items from a warehouse table that mirrors the board, one row per
// item column.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/rs/zerolog"
)

const DefaultTable = "monday_board_items"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

type Source struct {
	db    *sql.DB
	name  string
	table string
}

// NewSource reads from table through db. name is reported as the source of fetch errors.
func NewSource(db *sql.DB, name, table string) (*Source, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Source{db: db, name: name, table: table}, nil
}

func (s *Source) Name() string {
	return s.name
}

// Close releases the connection pool.
func (s *Source) Close() error {
	return s.db.Close()
}

// Fetch groups rows by item id. Items keep the order of their first row; columns keep row order.
func (s *Source) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	logger := zerolog.Ctx(ctx)
	query := fmt.Sprintf(`
		SELECT item_id, item_name, column_title, column_text
		FROM %s
		ORDER BY item_position, column_position
	`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.FetchError{Source: s.name, Err: fmt.Errorf("board items query failed: %w", err)}
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close board items rows")
		}
	}(rows)

	items := make([]domain.RawItem, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			id, name    string
			title, text sql.NullString
		)
		if err := rows.Scan(&id, &name, &title, &text); err != nil {
			return nil, &domain.FetchError{Source: s.name, Err: fmt.Errorf("failed to scan board item: %w", err)}
		}

		i, ok := index[id]
		if !ok {
			i = len(items)
			index[id] = i
			items = append(items, domain.RawItem{ID: id, Name: name})
		}
		if title.Valid {
			item := &items[i]
			item.Columns = append(item.Columns, domain.RawColumn{Title: title.String, Text: text.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.FetchError{Source: s.name, Err: err}
	}

	logger.Debug().Str("table", s.table).Int("items", len(items)).Msg("loaded board items")
	return items, nil
}
