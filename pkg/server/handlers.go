package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/apinav/pkg/buildinfo"
	"github.com/matzehuels/apinav/pkg/core/apidoc"
	"github.com/matzehuels/apinav/pkg/errors"
	"github.com/matzehuels/apinav/pkg/pipeline"
)

// =============================================================================
// Requests
// =============================================================================

// viewRequest is the body shared by the /v1 endpoints. Nil filters fall
// back to the server defaults.
type viewRequest struct {
	Document     *apidoc.Document `json:"document" validate:"required"`
	HideSchemas  *bool            `json:"hide_schemas,omitempty"`
	HideInternal *bool            `json:"hide_internal,omitempty"`
	Root         string           `json:"root,omitempty" validate:"omitempty,max=512,nodeid"`
	Subject      string           `json:"subject,omitempty" validate:"omitempty,max=512,nodeid"`
	Detailed     bool             `json:"detailed,omitempty"`
	Refresh      bool             `json:"refresh,omitempty"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("nodeid", func(fl validator.FieldLevel) bool {
		return errors.ValidateNodeID(fl.Field().String()) == nil
	})
	return v
}

// decode reads and validates a viewRequest.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*viewRequest, error) {
	var req viewRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBody))
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if err := s.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, errors.New(errors.ErrCodeInvalidInput, "field %s failed %q validation", fe.Field(), fe.Tag())
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "validate request")
	}
	if req.Document.Service.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has no service id")
	}
	return &req, nil
}

// options converts req into pipeline options for output rendered as format.
func (s *Server) options(req *viewRequest, output, format string) pipeline.Options {
	opts := pipeline.Options{
		Outputs:      []string{output},
		Formats:      []string{format},
		HideSchemas:  s.cfg.Tree.HideSchemas,
		HideInternal: s.cfg.Tree.HideInternal,
		Root:         req.Root,
		Subject:      req.Subject,
		Detailed:     req.Detailed,
		Refresh:      req.Refresh,
	}
	if req.HideSchemas != nil {
		opts.HideSchemas = *req.HideSchemas
	}
	if req.HideInternal != nil {
		opts.HideInternal = *req.HideInternal
	}
	return opts
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "apinav"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.OutputTOC, pipeline.FormatJSON)
}

func (s *Server) handleInbound(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.OutputInbound, pipeline.FormatJSON)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := errors.ValidateFormat(format, pipeline.FormatsFor(pipeline.OutputGraph)...); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveArtifact(w, r, pipeline.OutputGraph, format)
}

// serveArtifact runs the pipeline for one artifact and writes it.
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, output, format string) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Document, s.options(req, output, format))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := result.Artifacts[pipeline.ArtifactName(output, format)]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Doc-Hash", result.DocHash)
	if result.CacheInfo.AllCached() {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
}

// =============================================================================
// Responses
// =============================================================================

// errorBody is the JSON error envelope.
type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestIDFrom(r.Context()))
	}
	writeJSON(w, status, errorBody{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
