package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/draftly-hq/draftly"
)

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case draftly.IsNotFoundError(err):
		writeError(w, http.StatusNotFound, err.Error())
	case draftly.IsValidationError(err):
		var verrs *draftly.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidationError(w, verrs.Error(), verrs.Fields())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
	case draftly.IsRenderError(err):
		zap.S().Errorw("document render failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to render document")
	default:
		zap.S().Errorw("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// templatesHandler routes /api/v1/templates requests.
func (s *Server) templatesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	_, idStr, action, err := parsePath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid path: %v", err))
		return
	}

	if idStr == "" {
		s.handleListTemplates(w, r)
		return
	}

	id, err := parseID(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch action {
	case "":
		s.handleGetTemplate(w, r, id)
	case "form_schema":
		s.handleTemplateFormSchema(w, r, id)
	case "sections":
		s.handleTemplateSections(w, r, id)
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown template action: %s", action))
	}
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.service.ListTemplates(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request, id int64) {
	tpl, err := s.service.GetTemplate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, tpl)
}

// handleTemplateFormSchema serves a JSON Schema describing the template's
// fillable fields, for clients that build forms dynamically.
func (s *Server) handleTemplateFormSchema(w http.ResponseWriter, r *http.Request, id int64) {
	tpl, err := s.service.GetTemplate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, draftly.FormSchema(tpl))
}

func (s *Server) handleTemplateSections(w http.ResponseWriter, r *http.Request, id int64) {
	tpl, err := s.service.GetTemplate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, draftly.SectionFields(tpl.Fields))
}

// contractsHandler routes /api/v1/contracts requests.
func (s *Server) contractsHandler(w http.ResponseWriter, r *http.Request) {
	_, idStr, action, err := parsePath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid path: %v", err))
		return
	}

	if idStr == "" {
		switch r.Method {
		case http.MethodPost:
			s.handleCreateContract(w, r)
		case http.MethodGet:
			s.handleListContracts(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	id, err := parseID(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch action {
	case "":
		switch r.Method {
		case http.MethodGet:
			s.handleGetContract(w, r, id)
		case http.MethodPut:
			s.handleUpdateContract(w, r, id)
		case http.MethodDelete:
			s.handleDeleteContract(w, r, id)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case "preview":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handlePreviewContract(w, r, id)
	case "export":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleExportContract(w, r, id)
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown contract action: %s", action))
	}
}

func (s *Server) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var req draftly.CreateContractRequest
	if err := readJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid json body: %v", err))
		return
	}

	c, err := s.service.CreateContract(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, c)
}

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := s.service.ListContracts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, contracts)
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request, id int64) {
	c, err := s.service.GetContract(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, c)
}

func (s *Server) handleUpdateContract(w http.ResponseWriter, r *http.Request, id int64) {
	var req draftly.UpdateContractRequest
	if err := readJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid json body: %v", err))
		return
	}

	c, err := s.service.UpdateContract(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, c)
}

func (s *Server) handleDeleteContract(w http.ResponseWriter, r *http.Request, id int64) {
	deleted, err := s.service.DeleteContract(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, fmt.Sprintf("contract with id %d not found", id))
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

// handlePreviewContract returns the rendered document as HTML for in-place
// display.
func (s *Server) handlePreviewContract(w http.ResponseWriter, r *http.Request, id int64) {
	html, err := s.service.PreviewContract(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// handleExportContract streams the rendered PDF as an attachment.
func (s *Server) handleExportContract(w http.ResponseWriter, r *http.Request, id int64) {
	result, err := s.service.ExportContract(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			zap.S().Warnw("health check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
