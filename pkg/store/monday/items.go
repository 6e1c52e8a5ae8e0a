package monday

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
)

// item mirrors a board item as returned by items_page. Exports written to files or object storage
// use the same shape.
type item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ColumnValues []columnValue `json:"column_values"`
}

type columnValue struct {
	Text   *string `json:"text"`
	Column *column `json:"column"`
}

type column struct {
	Title string `json:"title"`
}

type export struct {
	Items []item `json:"items"`
}

func toRawItems(items []item) []domain.RawItem {
	out := make([]domain.RawItem, 0, len(items))
	for _, it := range items {
		raw := domain.RawItem{ID: it.ID, Name: it.Name, Columns: make([]domain.RawColumn, 0, len(it.ColumnValues))}
		for _, cv := range it.ColumnValues {
			var c domain.RawColumn
			if cv.Column != nil {
				c.Title = cv.Column.Title
			}
			if cv.Text != nil {
				c.Text = *cv.Text
			}
			raw.Columns = append(raw.Columns, c)
		}
		out = append(out, raw)
	}
	return out
}

// DecodeItems reads a board export: either a JSON array of items or an object with an "items" array.
func DecodeItems(r io.Reader) ([]domain.RawItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []domain.RawItem{}, nil
	}

	var items []item
	if trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &items)
	} else {
		var exp export
		err = json.Unmarshal(trimmed, &exp)
		items = exp.Items
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode export: %w", err)
	}
	return toRawItems(items), nil
}
