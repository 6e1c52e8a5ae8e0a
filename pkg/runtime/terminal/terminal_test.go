package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/runtime/terminal/commands"
	"github.com/DLICWCPA/monday-report-app/pkg/services/classify"
	"github.com/DLICWCPA/monday-report-app/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Run(ctx context.Context, profile string, w domain.ReportWindow) (*domain.Report, error) {
	args := m.Called(ctx, profile, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *mockService) Profiles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

var wednesday = time.Date(2024, 1, 10, 4, 0, 0, 0, time.UTC)

func currentWindow(t *testing.T) domain.ReportWindow {
	w, err := domain.NewReportWindow(domain.NewDate(2024, 1, 6), domain.NewDate(2024, 1, 13))
	require.NoError(t, err)
	return w
}

func sampleReport(t *testing.T) *domain.Report {
	w := currentWindow(t)
	created := domain.NewDate(2024, 1, 8)
	rows := classify.Apply([]domain.Enquiry{{
		ID: "1", Name: "Alpha", CreatedOn: &created, Status: "Active", Potential: "Hot",
		Department: "COS", Country: "Brazil", Salesperson: "Zoe", Service: "Audit",
		Stage: "Lead", ReferralSource: "Web",
	}}, w)
	sections, err := report.Assemble(rows, w, report.DefaultLayout())
	require.NoError(t, err)
	return &domain.Report{
		Title:    report.DefaultTitle,
		RunID:    "run-1",
		Window:   w,
		Data:     domain.Dataset{Columns: []string{domain.ColumnItemName}, Enquiries: rows},
		Sections: sections,
	}
}

func newTestCLI(svc *mockService, out *bytes.Buffer, args ...string) *CLI {
	cli := NewCLI(Options{
		Loader: func(string) (*commands.Runtime, error) {
			return &commands.Runtime{
				Service:        svc,
				UTCOffsetHours: 8,
				Timeout:        time.Minute,
				Now:            func() time.Time { return wednesday },
			}, nil
		},
		Output: out,
	})
	cli.SetArgs(args)
	return cli
}

func TestCLI_Window(t *testing.T) {
	var out bytes.Buffer
	cli := newTestCLI(&mockService{}, &out, "window")

	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, "From: 2024-01-06\nTo:   2024-01-13\n", out.String())
}

func TestCLI_Profiles(t *testing.T) {
	tests := []struct {
		name     string
		profiles []string
		want     string
	}{
		{name: "listed", profiles: []string{"archive", "sales"}, want: "Configured profiles:\narchive\nsales\n"},
		{name: "none", profiles: []string{}, want: "No profiles configured\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Profiles", mock.Anything).Return(tt.profiles, nil)
			var out bytes.Buffer

			require.NoError(t, newTestCLI(svc, &out, "profiles").Execute(context.Background()))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestCLI_Preview(t *testing.T) {
	// Given
	svc := &mockService{}
	svc.On("Run", mock.Anything, "sales", currentWindow(t)).Return(sampleReport(t), nil)
	var out bytes.Buffer

	// When
	err := newTestCLI(svc, &out, "preview", "--profile", "sales").Execute(context.Background())

	// Then
	require.NoError(t, err)
	svc.AssertExpectations(t)
	text := out.String()
	assert.Contains(t, text, "Weekly Enquiry Report (7 days)")
	assert.Contains(t, text, "Period: 2024-01-06 to 2024-01-13")
	assert.Contains(t, text, "=== "+report.TitleMovement+" ===")
	assert.Contains(t, text, "| This Week")
	assert.Contains(t, text, "There are total 1 active enquiries for COS")
}

func TestCLI_Generate(t *testing.T) {
	// Given
	svc := &mockService{}
	svc.On("Run", mock.Anything, "", currentWindow(t)).Return(sampleReport(t), nil)
	dir := t.TempDir()
	var out bytes.Buffer

	// When
	err := newTestCLI(svc, &out, "generate", "--from", "2024-01-06", "--to", "2024-01-13", "-o", dir).
		Execute(context.Background())

	// Then
	require.NoError(t, err)
	path := filepath.Join(dir, "monday_report_2024-01-06_to_2024-01-13.xlsx")
	assert.Equal(t, path, strings.TrimSpace(out.String()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Data", "Summary Report"}, f.GetSheetList())
}

func TestCLI_Generate_RenderFailureLeavesNoFile(t *testing.T) {
	// Given a report wider than a worksheet
	rep := sampleReport(t)
	columns := make([]string, 0, 16400)
	for i := 0; i < cap(columns); i++ {
		columns = append(columns, fmt.Sprintf("col-%d", i))
	}
	rep.Data.Columns = columns

	svc := &mockService{}
	svc.On("Run", mock.Anything, "", currentWindow(t)).Return(rep, nil)
	dir := t.TempDir()
	var out bytes.Buffer

	// When
	err := newTestCLI(svc, &out, "generate", "-o", dir).Execute(context.Background())

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render report")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, out.String())
}

func TestCLI_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		runErr  error
		wantErr string
	}{
		{
			name:    "only one window bound",
			args:    []string{"preview", "--from", "2024-01-06"},
			wantErr: "both start and end dates are required",
		},
		{
			name:    "generation failure",
			args:    []string{"preview"},
			runErr:  &domain.FetchError{Source: "monday", Err: errors.New("status 502")},
			wantErr: "failed to generate report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.runErr)
			var out bytes.Buffer

			err := newTestCLI(svc, &out, tt.args...).Execute(context.Background())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCLI_LoaderError(t *testing.T) {
	cli := NewCLI(Options{
		Loader: func(path string) (*commands.Runtime, error) {
			return nil, errors.New("bad config " + path)
		},
		Output: &bytes.Buffer{},
	})
	cli.SetArgs([]string{"window", "--config", "missing.yaml"})

	assert.EqualError(t, cli.Execute(context.Background()), "bad config missing.yaml")
}
