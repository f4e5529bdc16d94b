package http

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"coursedesk/internal/model"
	"coursedesk/internal/repository"
	"coursedesk/internal/validate"
)

func (s *Server) handleGetWeeks(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, ok := queryID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid week ID")
			return
		}
		week, err := s.store.GetWeek(r.Context(), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Week not found")
				return
			}
			s.serverError(w, "get week", err)
			return
		}
		writeData(w, http.StatusOK, week)
		return
	}

	weeks, err := s.store.ListWeeks(r.Context(), listOptions(r))
	if err != nil {
		s.serverError(w, "list weeks", err)
		return
	}
	writeData(w, http.StatusOK, weeks)
}

type createWeekRequest struct {
	Title       string   `json:"title"`
	StartDate   string   `json:"start_date"`
	Description string   `json:"description"`
	Links       []string `json:"links,omitempty"`
}

func (s *Server) handleCreateWeek(w http.ResponseWriter, r *http.Request) {
	var req createWeekRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := validate.Sanitize(req.Title)
	startDate := validate.Sanitize(req.StartDate)
	description := validate.Sanitize(req.Description)

	if title == "" || startDate == "" || description == "" {
		writeError(w, http.StatusBadRequest, "title, start_date and description are required")
		return
	}
	if !validate.Date(startDate) {
		writeError(w, http.StatusBadRequest, "Invalid start_date format. Use YYYY-MM-DD")
		return
	}

	week, err := s.store.CreateWeek(r.Context(), model.Week{
		Title:       title,
		StartDate:   startDate,
		Description: description,
		Links:       req.Links,
	})
	if err != nil {
		s.serverError(w, "create week", err)
		return
	}
	writeData(w, http.StatusCreated, week)
}

type updateWeekRequest struct {
	ID          int64     `json:"id"`
	Title       *string   `json:"title,omitempty"`
	StartDate   *string   `json:"start_date,omitempty"`
	Description *string   `json:"description,omitempty"`
	Links       *[]string `json:"links,omitempty"`
}

func (s *Server) handleUpdateWeek(w http.ResponseWriter, r *http.Request) {
	var req updateWeekRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == 0 {
		writeError(w, http.StatusBadRequest, "Week ID is required")
		return
	}

	if _, err := s.store.GetWeek(r.Context(), req.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Week not found")
			return
		}
		s.serverError(w, "get week", err)
		return
	}

	update := repository.WeekUpdate{}
	if req.Title != nil {
		title := validate.Sanitize(*req.Title)
		update.Title = &title
	}
	if req.StartDate != nil {
		startDate := validate.Sanitize(*req.StartDate)
		if !validate.Date(startDate) {
			writeError(w, http.StatusBadRequest, "Invalid start_date format")
			return
		}
		update.StartDate = &startDate
	}
	if req.Description != nil {
		description := validate.Sanitize(*req.Description)
		update.Description = &description
	}
	if req.Links != nil {
		update.Links = *req.Links
		update.SetLinks = true
	}

	week, err := s.store.UpdateWeek(r.Context(), req.ID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNoFields) {
			writeError(w, http.StatusBadRequest, "No fields to update")
			return
		}
		s.serverError(w, "update week", err)
		return
	}
	writeData(w, http.StatusOK, week)
}

func (s *Server) handleDeleteWeek(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Week ID is required")
		return
	}

	if _, err := s.store.GetWeek(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Week not found")
			return
		}
		s.serverError(w, "get week", err)
		return
	}

	deleted, err := s.store.DeleteWeek(r.Context(), id)
	if err != nil {
		s.serverError(w, "delete week", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusInternalServerError, "Failed to delete week")
		return
	}
	writeMessage(w, http.StatusOK, "Week and associated comments deleted")
}
