package http

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"coursedesk/internal/model"
	"coursedesk/internal/repository"
	"coursedesk/internal/validate"
)

func (s *Server) handleGetAssignments(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, ok := queryID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid assignment ID")
			return
		}
		assignment, err := s.store.GetAssignment(r.Context(), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Assignment not found")
				return
			}
			s.serverError(w, "get assignment", err)
			return
		}
		writeData(w, http.StatusOK, assignment)
		return
	}

	assignments, err := s.store.ListAssignments(r.Context(), listOptions(r))
	if err != nil {
		s.serverError(w, "list assignments", err)
		return
	}
	writeData(w, http.StatusOK, assignments)
}

type createAssignmentRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	Files       []string `json:"files,omitempty"`
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := validate.Sanitize(req.Title)
	description := validate.Sanitize(req.Description)
	dueDate := validate.Sanitize(req.DueDate)

	if title == "" || description == "" || dueDate == "" {
		writeError(w, http.StatusBadRequest, "title, description and due_date are required")
		return
	}
	if !validate.Date(dueDate) {
		writeError(w, http.StatusBadRequest, "Invalid date format. Expected YYYY-MM-DD")
		return
	}

	assignment, err := s.store.CreateAssignment(r.Context(), model.Assignment{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Files:       req.Files,
	})
	if err != nil {
		s.serverError(w, "create assignment", err)
		return
	}
	writeData(w, http.StatusCreated, assignment)
}

type updateAssignmentRequest struct {
	ID          int64     `json:"id"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	Files       *[]string `json:"files,omitempty"`
}

func (s *Server) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var req updateAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == 0 {
		writeError(w, http.StatusBadRequest, "Assignment ID is required")
		return
	}

	if _, err := s.store.GetAssignment(r.Context(), req.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Assignment not found")
			return
		}
		s.serverError(w, "get assignment", err)
		return
	}

	update := repository.AssignmentUpdate{}
	if req.Title != nil {
		title := validate.Sanitize(*req.Title)
		update.Title = &title
	}
	if req.Description != nil {
		description := validate.Sanitize(*req.Description)
		update.Description = &description
	}
	if req.DueDate != nil {
		dueDate := validate.Sanitize(*req.DueDate)
		if !validate.Date(dueDate) {
			writeError(w, http.StatusBadRequest, "Invalid date format. Expected YYYY-MM-DD")
			return
		}
		update.DueDate = &dueDate
	}
	if req.Files != nil {
		update.Files = *req.Files
		update.SetFiles = true
	}

	assignment, err := s.store.UpdateAssignment(r.Context(), req.ID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNoFields) {
			writeError(w, http.StatusBadRequest, "No fields to update")
			return
		}
		s.serverError(w, "update assignment", err)
		return
	}
	writeData(w, http.StatusOK, assignment)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Assignment ID is required")
		return
	}

	if _, err := s.store.GetAssignment(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Assignment not found")
			return
		}
		s.serverError(w, "get assignment", err)
		return
	}

	deleted, err := s.store.DeleteAssignment(r.Context(), id)
	if err != nil {
		s.serverError(w, "delete assignment", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusInternalServerError, "Failed to delete assignment")
		return
	}
	writeMessage(w, http.StatusOK, "Assignment and associated comments deleted")
}
