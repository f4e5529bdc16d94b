package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"coursedesk/internal/model"
	"coursedesk/internal/repository"
	"coursedesk/internal/validate"
)

func (s *Server) handleGetResources(w http.ResponseWriter, r *http.Request) {
	if resourceID := r.URL.Query().Get("resource_id"); resourceID != "" {
		resource, err := s.store.GetResource(r.Context(), resourceID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Resource not found")
				return
			}
			s.serverError(w, "get resource", err)
			return
		}
		writeData(w, http.StatusOK, resource)
		return
	}

	resources, err := s.store.ListResources(r.Context(), listOptions(r))
	if err != nil {
		s.serverError(w, "list resources", err)
		return
	}
	writeData(w, http.StatusOK, resources)
}

type createResourceRequest struct {
	ResourceID  string `json:"resource_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	var req createResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resourceID := validate.Sanitize(req.ResourceID)
	title := validate.Sanitize(req.Title)
	description := validate.Sanitize(req.Description)
	link := strings.TrimSpace(req.Link)

	if resourceID == "" || title == "" || link == "" {
		writeError(w, http.StatusBadRequest, "resource_id, title and link are required")
		return
	}

	exists, err := s.store.ResourceExists(r.Context(), resourceID)
	if err != nil {
		s.serverError(w, "resource uniqueness check", err)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "Resource ID already exists")
		return
	}

	resource, err := s.store.CreateResource(r.Context(), model.Resource{
		ResourceID:  resourceID,
		Title:       title,
		Description: description,
		Link:        link,
	})
	if err != nil {
		s.serverError(w, "create resource", err)
		return
	}
	writeData(w, http.StatusCreated, resource)
}

type updateResourceRequest struct {
	ResourceID  string  `json:"resource_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Link        *string `json:"link,omitempty"`
}

func (s *Server) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	var req updateResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resourceID := strings.TrimSpace(req.ResourceID)
	if resourceID == "" {
		writeError(w, http.StatusBadRequest, "resource_id is required")
		return
	}

	if _, err := s.store.GetResource(r.Context(), resourceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Resource not found")
			return
		}
		s.serverError(w, "get resource", err)
		return
	}

	update := repository.ResourceUpdate{}
	if req.Title != nil {
		title := validate.Sanitize(*req.Title)
		update.Title = &title
	}
	if req.Description != nil {
		description := validate.Sanitize(*req.Description)
		update.Description = &description
	}
	if req.Link != nil {
		link := strings.TrimSpace(*req.Link)
		update.Link = &link
	}

	resource, err := s.store.UpdateResource(r.Context(), resourceID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNoFields) {
			writeError(w, http.StatusBadRequest, "No fields to update")
			return
		}
		s.serverError(w, "update resource", err)
		return
	}
	writeData(w, http.StatusOK, resource)
}

func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	resourceID := r.URL.Query().Get("resource_id")
	if resourceID == "" {
		var body struct {
			ResourceID string `json:"resource_id"`
		}
		if err := decodeJSON(r, &body); err == nil {
			resourceID = body.ResourceID
		}
	}
	if resourceID == "" {
		writeError(w, http.StatusBadRequest, "resource_id is required")
		return
	}

	if _, err := s.store.GetResource(r.Context(), resourceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Resource not found")
			return
		}
		s.serverError(w, "get resource", err)
		return
	}

	deleted, err := s.store.DeleteResource(r.Context(), resourceID)
	if err != nil {
		s.serverError(w, "delete resource", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusInternalServerError, "Failed to delete resource")
		return
	}
	writeMessage(w, http.StatusOK, "Resource deleted")
}
