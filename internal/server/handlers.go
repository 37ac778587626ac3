package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cgfgestion/investment-simulator/internal/calculation"
	"github.com/cgfgestion/investment-simulator/internal/config"
	"github.com/cgfgestion/investment-simulator/internal/domain"
	"github.com/cgfgestion/investment-simulator/internal/output"
)

const maxBodyBytes = 1 << 20

// SolveRequest is the body of POST /api/v1/solve.
type SolveRequest struct {
	Mode       string            `json:"mode"`
	Parameters domain.Parameters `json:"parameters"`
}

// TrajectoryRequest is the body of POST /api/v1/trajectory. Yearly keeps only
// month 0, every twelfth month and the last month.
type TrajectoryRequest struct {
	Parameters domain.Parameters `json:"parameters"`
	Yearly     bool              `json:"yearly"`
}

// TrajectoryResponse carries the replayed months and their breakdown.
type TrajectoryResponse struct {
	Points    []domain.MonthPoint `json:"points"`
	Breakdown domain.Breakdown    `json:"breakdown"`
}

// SweepRequest is the body of POST /api/v1/sweep/{kind}.
type SweepRequest struct {
	Parameters domain.Parameters `json:"parameters"`
	Values     []float64         `json:"values,omitempty"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error  string  `json:"error"`
	Field  string  `json:"field,omitempty"`
	Reason string  `json:"reason,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

var errBadRequest = errors.New("bad request")

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	res, err := s.engine.Solve(r.Context(), mode, req.Parameters)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	var req TrajectoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	points, err := calculation.Trajectory(req.Parameters)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := TrajectoryResponse{Points: points, Breakdown: calculation.BreakdownOf(points)}
	if req.Yearly {
		resp.Points = calculation.YearlyPoints(points)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	kind := domain.SweepKind(chi.URLParam(r, "kind"))
	switch kind {
	case domain.SweepHorizon, domain.SweepRate, domain.SweepContribution:
	default:
		s.writeError(w, fmt.Errorf("%w: unknown sweep kind %q", errBadRequest, kind))
		return
	}
	var req SweepRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sweep, err := calculation.RunSweep(r.Context(), kind, req.Parameters, req.Values)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sweep)
}

// handleReport runs a whole simulation file, sent as JSON, and returns it
// rendered in the requested output format.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	f := output.GetFormatterByName(chi.URLParam(r, "format"))
	if f == nil {
		s.writeError(w, fmt.Errorf("%w: %w %q", errBadRequest, output.ErrUnsupportedFormat, chi.URLParam(r, "format")))
		return
	}
	var cfg domain.Configuration
	if err := decodeBody(w, r, &cfg); err != nil {
		s.writeError(w, err)
		return
	}
	if err := config.NewInputParser().ValidateConfiguration(&cfg); err != nil {
		s.writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	report, err := s.engine.RunSimulations(r.Context(), &cfg, s.opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := f.Format(report)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(f.Extension()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentType(ext string) string {
	switch ext {
	case "json":
		return "application/json"
	case "csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "pdf":
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}

// writeError maps engine errors to statuses: invalid input is 400, a result
// outside the float range is 422, anything else is 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var vErr *calculation.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: vErr.Field, Reason: vErr.Reason, Value: vErr.Value})
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, calculation.ErrComputation):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
