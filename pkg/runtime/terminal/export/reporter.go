package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
)

type TableConfig struct {
	CellWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CellWidth: 22,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `
{{.Title}} ({{.Window.Days}} days)

Period: {{.Window.Begin.Format "2006-01-02"}} to {{.Window.End.Format "2006-01-02"}}
Enquiries: {{len .Data.Enquiries}}
Run: {{.RunID}}
{{range .Sections}}
=== {{.Title}} ===
{{range .Summary}}{{.}}
{{end}}{{if .Header}}{{separator (len .Header)}}
{{formatRow .Header}}
{{separator (len .Header)}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator (len .Header)}}
{{end}}{{end}}`

// Handle prints every section of report as a fixed-width text table.
func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(cells any) string {
			var b strings.Builder
			b.WriteString("|")
			for _, v := range toCells(cells) {
				fmt.Fprintf(&b, " %-*s |", c.config.CellWidth, c.fit(v))
			}
			return b.String()
		},
		"separator": func(n int) string {
			return "+" + strings.Repeat(strings.Repeat("-", c.config.CellWidth+2)+"+", n)
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// fit renders v and cuts it to the cell width.
func (c *Reporter) fit(v any) string {
	s := fmt.Sprint(v)
	r := []rune(s)
	if len(r) <= c.config.CellWidth {
		return s
	}
	return string(r[:c.config.CellWidth-3]) + "..."
}

func toCells(cells any) []any {
	switch v := cells.(type) {
	case domain.Row:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}
