package monday

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportJSON = `[
	{"id":"1","name":"Alpha","column_values":[{"text":"Hot","column":{"title":"Potential"}}]},
	{"id":"2","name":"Beta"}
]`

func TestDecodeItems(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "array", input: exportJSON, want: 2},
		{name: "wrapped", input: `{"items":` + exportJSON + `}`, want: 2},
		{name: "empty document", input: "  \n", want: 0},
		{name: "empty array", input: "[]", want: 0},
		{name: "malformed", input: `[{"id":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := DecodeItems(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestDecodeItems_Columns(t *testing.T) {
	items, err := DecodeItems(strings.NewReader(exportJSON))

	require.NoError(t, err)
	assert.Equal(t, []domain.RawColumn{{Title: "Potential", Text: "Hot"}}, items[0].Columns)
	assert.Empty(t, items[1].Columns)
}

func TestFileSource_Fetch(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte(exportJSON), 0o600))
	src, err := NewFileSource(path)
	require.NoError(t, err)

	// When
	items, err := src.Fetch(context.Background())

	// Then
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, FileSourceName, src.Name())
}

func TestFileSource_MissingFile(t *testing.T) {
	src, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())

	var fErr *domain.FetchError
	require.ErrorAs(t, err, &fErr)
	assert.Equal(t, FileSourceName, fErr.Source)
	assert.True(t, os.IsNotExist(fErr.Err))
}

func TestNewFileSource_RequiresPath(t *testing.T) {
	_, err := NewFileSource("")
	assert.Error(t, err)
}
