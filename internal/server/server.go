package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/finance-models/internal/calculator"
	"github.com/iwvelando/finance-models/internal/config"
	"github.com/iwvelando/finance-models/pkg/constants"
	"github.com/iwvelando/finance-models/pkg/format"
	"github.com/iwvelando/finance-models/pkg/mathutil"
	"github.com/iwvelando/finance-models/pkg/output"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	metrics     *metrics
}

// NewHandler constructs the HTTP handler that serves the web UI and calculator API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		metrics:     newMetrics(),
	}

	mux := http.NewServeMux()

	// Calculator API endpoint returning every result plus chart data
	mux.HandleFunc("/api/calculate", h.instrument("calculate", h.handleCalculate))

	// Downloadable CSV report
	mux.HandleFunc("/api/report", h.instrument("report", h.handleReport))

	// Config serialization endpoint for form downloads
	mux.HandleFunc("/api/config", h.instrument("config", h.handleConfigExport))

	// Form defaults
	mux.HandleFunc("/api/defaults", h.instrument("defaults", h.handleDefaults))

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.instrument("version", h.handleVersion))

	mux.Handle("/metrics", h.metrics.handler())

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return withRequestID(logger, mux)
}

type calculateResponse struct {
	Results  []resultRow        `json:"results"`
	Report   *calculator.Report `json:"report"`
	CSV      string             `json:"csv"`
	Warnings []string           `json:"warnings,omitempty"`
	Duration string             `json:"duration"`
}

type resultRow struct {
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	inputs, report, ok := h.computeReport(w, r, op)
	if !ok {
		return
	}

	conf := config.Configuration{Inputs: inputs}
	elapsed := time.Since(start)

	response := calculateResponse{
		Results:  buildResults(report),
		Report:   report,
		CSV:      output.CsvString(report),
		Warnings: conf.ValidateConfiguration(),
		Duration: elapsed.String(),
	}

	h.logger.Info("calculation completed",
		zap.String("op", op),
		zap.String("requestID", w.Header().Get(requestIDHeader)),
		zap.Int("cashFlows", len(report.Params.CashFlows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	_, report, ok := h.computeReport(w, r, op)
	if !ok {
		return
	}

	body := output.CsvString(report)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.ReportFileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		h.logger.Warn("failed to write report",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	inputs, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}

	conf := config.Configuration{Inputs: inputs}
	yamlBytes, err := conf.YAML()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, config.DefaultInputs())
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// computeReport decodes the inputs, runs the calculator and rejects results
// that JSON and CSV consumers cannot use. On failure the error response has
// already been written.
func (h *handler) computeReport(w http.ResponseWriter, r *http.Request, op string) (config.Inputs, *calculator.Report, bool) {
	inputs, ok := h.decodeInputs(w, r, op)
	if !ok {
		return inputs, nil, false
	}

	report, err := calculator.Compute(h.logger, inputs)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return inputs, nil, false
	}

	for _, metric := range report.Metrics() {
		if !mathutil.IsFinite(metric.Value) {
			h.respondErrorWithOp(w, http.StatusBadRequest,
				fmt.Sprintf("%s is not a finite number", metric.Name), op)
			return inputs, nil, false
		}
	}
	return inputs, report, true
}

// decodeInputs reads a JSON object of form inputs. Fields left out keep their
// defaults and an empty body means all defaults.
func (h *handler) decodeInputs(w http.ResponseWriter, r *http.Request, op string) (config.Inputs, bool) {
	inputs := config.DefaultInputs()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&inputs); err != nil {
		if errors.Is(err, io.EOF) {
			return inputs, true
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return inputs, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err), op)
		return inputs, false
	}
	return inputs, true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculator request failed",
		zap.String("op", op),
		zap.String("requestID", w.Header().Get(requestIDHeader)),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func buildResults(report *calculator.Report) []resultRow {
	metrics := report.Metrics()
	rows := make([]resultRow, 0, len(metrics))
	for _, metric := range metrics {
		display := format.Currency(metric.Value)
		if metric.Name == constants.MetricCAPM || metric.Name == constants.MetricWACC {
			display = format.Percent(metric.Value)
		}
		rows = append(rows, resultRow{Metric: metric.Name, Value: metric.Value, Display: display})
	}
	return rows
}
