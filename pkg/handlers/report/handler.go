package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/adapters"
	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/render/xlsx"
	"github.com/DLICWCPA/monday-report-app/pkg/services/config"
	"github.com/DLICWCPA/monday-report-app/pkg/services/pipeline"
	"github.com/DLICWCPA/monday-report-app/pkg/services/window"
	"github.com/rs/zerolog"
)

//go:embed templates/index.html
var templates embed.FS

const defaultTitle = "Monday Report"

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type Handler struct {
	reports        pipeline.Service
	renderer       *xlsx.Renderer
	title          string
	utcOffsetHours int
	now            func() time.Time
}

type Options struct {
	Title          string
	UTCOffsetHours int
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewHandler(reports pipeline.Service, renderer *xlsx.Renderer, opts Options) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	return &Handler{
		reports:        reports,
		renderer:       renderer,
		title:          opts.Title,
		utcOffsetHours: opts.UTCOffsetHours,
		now:            opts.Now,
	}
}

type indexPage struct {
	Title    string
	Start    string
	End      string
	Profiles []string
}

// Index serves the report form, prefilled with the current window.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	profiles, err := h.reports.Profiles(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list profiles")
	}

	current := window.Current(h.now(), h.utcOffsetHours)
	page := indexPage{
		Title:    h.title,
		Start:    current.Begin.Format("2006-01-02"),
		End:      current.End.Format("2006-01-02"),
		Profiles: profiles,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		logger.Error().Err(err).Msg("failed to render index page")
	}
}

// GenerateReport answers the form post with the workbook as an attachment.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rep, ok := h.run(w, r, r.PostFormValue("start_date"), r.PostFormValue("end_date"), r.PostFormValue("profile"))
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Write(rep, &buf); err != nil {
		logger.Error().Err(err).Str("run_id", rep.RunID).Msg("failed to render report")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, xlsx.FileName(rep.Window)))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn().Err(err).Str("run_id", rep.RunID).Msg("failed to send report")
	}
}

// GetSummary returns the report sections as JSON.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	query := r.URL.Query()

	rep, ok := h.run(w, r, query.Get("from"), query.Get("to"), query.Get("profile"))
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(adapters.MapReportDomainToApi(rep))
	if err != nil {
		logger.Error().
			Err(err).
			Str("run_id", rep.RunID).
			Msg("failed to encode report summary")
	}
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, from, to, profile string) (*domain.Report, bool) {
	ctx := r.Context()

	win, err := window.Parse(from, to, h.now(), h.utcOffsetHours)
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}

	rep, err := h.reports.Run(ctx, profile, win)
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return rep, true
}

// fail maps err to a status code and writes its message as plain text.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	event := zerolog.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg("report request failed")

	http.Error(w, err.Error(), status)
}

// StatusFor returns the HTTP status a failed report run answers with.
func StatusFor(err error) int {
	var (
		vErr *domain.ValidationError
		fErr *domain.FetchError
		sErr *domain.SchemaError
	)
	switch {
	case errors.As(err, &vErr), errors.Is(err, config.ErrUnknownProfile):
		return http.StatusBadRequest
	case errors.As(err, &fErr), errors.As(err, &sErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
