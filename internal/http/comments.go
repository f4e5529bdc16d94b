package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"coursedesk/internal/model"
	"coursedesk/internal/repository"
	"coursedesk/internal/validate"
)

// commentResource binds a comment family to its parent: the query/body
// parameter naming the parent, the noun for error messages, and the parent
// existence check.
type commentResource struct {
	family       repository.CommentFamily
	parentParam  string
	parentNoun   string
	parentExists func(ctx context.Context, id int64) (bool, error)
}

func (s *Server) assignmentComments() commentResource {
	return commentResource{
		family:      repository.AssignmentComments,
		parentParam: "assignment_id",
		parentNoun:  "Assignment",
		parentExists: func(ctx context.Context, id int64) (bool, error) {
			_, err := s.store.GetAssignment(ctx, id)
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return err == nil, err
		},
	}
}

func (s *Server) weekComments() commentResource {
	return commentResource{
		family:      repository.WeekComments,
		parentParam: "week_id",
		parentNoun:  "Week",
		parentExists: func(ctx context.Context, id int64) (bool, error) {
			_, err := s.store.GetWeek(ctx, id)
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return err == nil, err
		},
	}
}

func (s *Server) handleGetAssignmentComments(w http.ResponseWriter, r *http.Request) {
	s.listComments(w, r, s.assignmentComments())
}

func (s *Server) handleCreateAssignmentComment(w http.ResponseWriter, r *http.Request) {
	s.createComment(w, r, s.assignmentComments())
}

func (s *Server) handleDeleteAssignmentComment(w http.ResponseWriter, r *http.Request) {
	s.deleteComment(w, r, s.assignmentComments())
}

func (s *Server) handleGetWeekComments(w http.ResponseWriter, r *http.Request) {
	s.listComments(w, r, s.weekComments())
}

func (s *Server) handleCreateWeekComment(w http.ResponseWriter, r *http.Request) {
	s.createComment(w, r, s.weekComments())
}

func (s *Server) handleDeleteWeekComment(w http.ResponseWriter, r *http.Request) {
	s.deleteComment(w, r, s.weekComments())
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request, res commentResource) {
	raw := r.URL.Query().Get(res.parentParam)
	if raw == "" {
		writeError(w, http.StatusBadRequest, res.parentParam+" is required")
		return
	}
	parentID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+res.parentParam)
		return
	}

	comments, err := s.store.ListComments(r.Context(), res.family, parentID)
	if err != nil {
		s.serverError(w, "list comments", err)
		return
	}
	writeData(w, http.StatusOK, comments)
}

type createCommentRequest struct {
	AssignmentID int64  `json:"assignment_id,omitempty"`
	WeekID       int64  `json:"week_id,omitempty"`
	Author       string `json:"author"`
	Text         string `json:"text"`
}

func (req createCommentRequest) parentID(param string) int64 {
	if param == "week_id" {
		return req.WeekID
	}
	return req.AssignmentID
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request, res commentResource) {
	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	parentID := req.parentID(res.parentParam)
	author := validate.Sanitize(req.Author)
	text := validate.Sanitize(req.Text)

	if parentID == 0 || author == "" {
		writeError(w, http.StatusBadRequest, res.parentParam+", author and text are required")
		return
	}
	if text == "" {
		writeError(w, http.StatusBadRequest, "Comment text cannot be empty")
		return
	}

	exists, err := res.parentExists(r.Context(), parentID)
	if err != nil {
		s.serverError(w, "check comment parent", err)
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, res.parentNoun+" not found")
		return
	}

	comment, err := s.store.CreateComment(r.Context(), res.family, model.Comment{
		ParentID: parentID,
		Author:   author,
		Text:     text,
	})
	if err != nil {
		s.serverError(w, "create comment", err)
		return
	}
	writeData(w, http.StatusCreated, comment)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request, res commentResource) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Comment ID is required")
		return
	}

	exists, err := s.store.CommentExists(r.Context(), res.family, id)
	if err != nil {
		s.serverError(w, "check comment", err)
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}

	deleted, err := s.store.DeleteComment(r.Context(), res.family, id)
	if err != nil {
		s.serverError(w, "delete comment", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}
	writeMessage(w, http.StatusOK, "Comment deleted")
}
