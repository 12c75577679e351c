// Package web serves the upload/download surface for single pay runs. Each
// request carries its three input files and is processed in isolation; nothing
// is kept between requests.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"payprep/config"
	"payprep/importer"
	"payprep/output"
	"payprep/payroll"
)

const (
	fieldRoster = "roster"
	fieldTimers = "timers"
	fieldExport = "export"

	defaultPreviewRows = 5
	runIDHeader        = "X-Run-ID"
	warningCountHeader = "X-Warning-Count"
)

type Server struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
	router *gin.Engine
}

type errorResponse struct {
	Error   string   `json:"error"`
	Table   string   `json:"table,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

type viewResponse struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

type previewResponse struct {
	output.Report
	Complete viewResponse `json:"complete"`
	Upload   viewResponse `json:"upload"`
}

// requestError carries the HTTP status for failures before the engine runs.
type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

type Option func(*Server)

// WithClock replaces the wall clock used to resolve the pay cycle.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func NewServer(cfg config.Config, opts ...Option) http.Handler {
	server := &Server{
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(server)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), server.requestLogger())
	router.MaxMultipartMemory = server.maxUploadBytes()

	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	api := router.Group("/api")
	api.GET("/cycle", server.handleCycle)
	api.POST("/validate", server.handleValidate)
	api.POST("/preview", server.handlePreview)
	api.POST("/combine", server.handleCombine)
	server.router = router

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) maxUploadBytes() int64 {
	mb := s.cfg.Serve.MaxUploadMB
	if mb <= 0 {
		mb = 32
	}
	return mb << 20
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		runID := uuid.NewString()
		c.Set(runIDHeader, runID)
		c.Header(runIDHeader, runID)

		start := time.Now()
		c.Next()

		s.logger.Info("request",
			"run_id", runID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleCycle(c *gin.Context) {
	today, err := s.resolveToday(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, output.NewCycleReport(payroll.ResolveCycle(today)))
}

func (s *Server) handleValidate(c *gin.Context) {
	result, ok := s.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, output.NewReport(c.GetString(runIDHeader), result))
}

func (s *Server) handlePreview(c *gin.Context) {
	rows := defaultPreviewRows
	if raw := strings.TrimSpace(c.Query("rows")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "rows must be a non-negative integer"})
			return
		}
		rows = parsed
	}

	result, ok := s.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, previewResponse{
		Report:   output.NewReport(c.GetString(runIDHeader), result),
		Complete: newViewResponse(result.Complete, rows),
		Upload:   newViewResponse(result.Upload, rows),
	})
}

func (s *Server) handleCombine(c *gin.Context) {
	var view func(*payroll.Result) payroll.View
	switch strings.ToLower(strings.TrimSpace(c.DefaultQuery("view", "complete"))) {
	case "complete":
		view = func(r *payroll.Result) payroll.View { return r.Complete }
	case "upload":
		view = func(r *payroll.Result) payroll.View { return r.Upload }
	default:
		c.JSON(http.StatusBadRequest, errorResponse{Error: "view must be complete or upload"})
		return
	}

	writer, err := output.WriterForFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, ok := s.run(c)
	if !ok {
		return
	}

	selected := view(result)
	var buf bytes.Buffer
	if err := writer.Write(&buf, selected); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName(selected, writer)))
	c.Header(warningCountHeader, strconv.Itoa(len(result.Warnings)))
	c.Data(http.StatusOK, writer.ContentType(), buf.Bytes())
}

// run reads the three uploaded tables and executes one engine pass. On
// failure the response has already been written.
func (s *Server) run(c *gin.Context) (*payroll.Result, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes())

	engine, err := s.engineFor(c)
	if err != nil {
		s.fail(c, err)
		return nil, false
	}

	inputs, err := readInputs(c)
	if err != nil {
		s.fail(c, err)
		return nil, false
	}

	result, err := engine.Run(inputs)
	if err != nil {
		s.fail(c, err)
		return nil, false
	}

	s.logger.Debug("run completed",
		"run_id", c.GetString(runIDHeader),
		"cycle", result.Cycle.String(),
		"rows", len(result.Rows),
		"warnings", len(result.Warnings),
	)
	return result, true
}

func (s *Server) engineFor(c *gin.Context) (*payroll.Engine, error) {
	today, err := s.resolveToday(c)
	if err != nil {
		return nil, &requestError{status: http.StatusBadRequest, err: err}
	}

	opts, err := s.cfg.EngineOptions(today)
	if err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(c.PostForm("hours_mode")); raw != "" {
		mode, err := payroll.ParseHoursMode(raw)
		if err != nil {
			return nil, &requestError{status: http.StatusBadRequest, err: err}
		}
		opts.HoursMode = mode
	}
	if raw := strings.TrimSpace(c.PostForm("roster_variant")); raw != "" {
		variant, err := payroll.ParseRosterVariant(raw)
		if err != nil {
			return nil, &requestError{status: http.StatusBadRequest, err: err}
		}
		opts.RosterVariant = variant
	}

	return payroll.New(opts)
}

// resolveToday honours an explicit today query or form value, otherwise the
// current date in the configured timezone.
func (s *Server) resolveToday(c *gin.Context) (time.Time, error) {
	raw := strings.TrimSpace(c.Query("today"))
	if raw == "" && c.Request.Method == http.MethodPost {
		raw = strings.TrimSpace(c.PostForm("today"))
	}
	if raw != "" {
		return s.cfg.ParseToday(raw)
	}
	return s.cfg.Today(s.now())
}

func readInputs(c *gin.Context) (payroll.Inputs, error) {
	roster, err := readUpload(c, fieldRoster, payroll.SourceRoster)
	if err != nil {
		return payroll.Inputs{}, err
	}
	timers, err := readUpload(c, fieldTimers, payroll.SourceTimers)
	if err != nil {
		return payroll.Inputs{}, err
	}
	entries, err := readUpload(c, fieldExport, payroll.SourceTimeEntries)
	if err != nil {
		return payroll.Inputs{}, err
	}
	return payroll.Inputs{Roster: roster, Timers: timers, TimeEntries: entries}, nil
}

func readUpload(c *gin.Context, field, name string) (*importer.Table, error) {
	header, err := c.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &requestError{status: http.StatusRequestEntityTooLarge, err: fmt.Errorf("upload exceeds %d bytes", maxErr.Limit)}
		}
		return nil, &requestError{status: http.StatusBadRequest, err: fmt.Errorf("missing %s file upload (form field %q)", name, field)}
	}

	format, err := importer.InferFormat(header.Filename, c.PostForm(field+"_format"))
	if err != nil {
		// Uploads without a recognizable extension are treated as CSV.
		format = "csv"
	}
	reader, err := importer.ReaderForFormat(format)
	if err != nil {
		return nil, &requestError{status: http.StatusBadRequest, err: err}
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s upload: %w", name, err)
	}
	defer file.Close()

	table, err := reader.Read(file, name)
	if err != nil {
		return nil, &requestError{status: http.StatusUnprocessableEntity, err: fmt.Errorf("read %s file: %w", name, err)}
	}
	return table, nil
}

func (s *Server) fail(c *gin.Context, err error) {
	var (
		reqErr       *requestError
		schemaErr    *payroll.SchemaError
		structureErr *payroll.StructureError
	)

	switch {
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Table: schemaErr.Table, Missing: schemaErr.Missing})
	case errors.As(err, &structureErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Table: structureErr.Table})
	case errors.As(err, &reqErr):
		c.JSON(reqErr.status, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("run failed", "run_id", c.GetString(runIDHeader), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func newViewResponse(view payroll.View, rows int) viewResponse {
	head := view.Head(rows)
	body := head.Rows
	if body == nil {
		body = [][]string{}
	}
	return viewResponse{Name: view.Name, Headers: head.Headers, Rows: body, Total: len(view.Rows)}
}
