package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/robdd/pkg/errors"
	bddio "github.com/matzehuels/robdd/pkg/io"
	"github.com/matzehuels/robdd/pkg/pipeline"
	"github.com/matzehuels/robdd/pkg/render"
)

// BuildRequest is the body of POST /v1/diagrams.
type BuildRequest struct {
	Formula  string   `json:"formula"`
	Order    []string `json:"order,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
	Verify   bool     `json:"verify,omitempty"`
}

// BuildResponse describes a built diagram.
type BuildResponse struct {
	ID            string       `json:"id"`
	Formula       string       `json:"formula"`
	Order         []string     `json:"order"`
	Root          int          `json:"root"`
	NodeCount     int          `json:"node_count"`
	InternalCount int          `json:"internal_count"`
	EdgeCount     int          `json:"edge_count"`
	SatCount      string       `json:"sat_count"`
	Evaluations   int          `json:"oracle_calls"`
	Cached        bool         `json:"cached"`
	DOT           string       `json:"dot"`
	Nodes         []bddio.Node `json:"nodes"`
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Formula string   `json:"formula"`
	Order   []string `json:"order,omitempty"`
	Format  string   `json:"format"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req BuildRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Formula:  req.Formula,
		Order:    req.Order,
		Strategy: req.Strategy,
		Verify:   req.Verify,
		Formats:  []string{pipeline.FormatDOT},
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	d := res.Diagram
	doc := bddio.NewDocument(d, res.Expr.String())
	writeJSON(w, http.StatusOK, BuildResponse{
		ID:            res.ID,
		Formula:       doc.Formula,
		Order:         doc.Order,
		Root:          int(doc.Root),
		NodeCount:     d.NodeCount(),
		InternalCount: d.InternalCount(),
		EdgeCount:     d.EdgeCount(),
		SatCount:      d.SatCount().String(),
		Evaluations:   res.Stats.Evaluations,
		Cached:        res.CacheInfo.DiagramHit,
		DOT:           string(res.Artifacts[pipeline.FormatDOT]),
		Nodes:         doc.Nodes,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Format == "" {
		req.Format = render.FormatSVG
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Formula: req.Formula,
		Order:   req.Order,
		Formats: []string{req.Format},
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	contentType := render.ContentType(req.Format)
	if req.Format == pipeline.FormatJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Diagram-Id", res.ID)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[req.Format])
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormula, errors.ErrCodeInvalidVariableOrder,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeOracleFailure:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork, errors.ErrCodeRenderFailed:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
