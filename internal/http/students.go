package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"coursedesk/internal/crypto"
	"coursedesk/internal/model"
	"coursedesk/internal/repository"
	"coursedesk/internal/validate"
)

const minPasswordLength = 8

func (s *Server) handleGetStudents(w http.ResponseWriter, r *http.Request) {
	if studentID := r.URL.Query().Get("student_id"); studentID != "" {
		student, err := s.store.GetStudent(r.Context(), studentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Student not found")
				return
			}
			s.serverError(w, "get student", err)
			return
		}
		writeData(w, http.StatusOK, student)
		return
	}

	students, err := s.store.ListStudents(r.Context(), listOptions(r))
	if err != nil {
		s.serverError(w, "list students", err)
		return
	}
	writeData(w, http.StatusOK, students)
}

// handlePostStudents creates a student, or changes a password when the
// request carries ?action=change_password.
func (s *Server) handlePostStudents(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("action") == "change_password" {
		s.handleChangePassword(w, r)
		return
	}
	s.handleCreateStudent(w, r)
}

type createStudentRequest struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	studentID := validate.Sanitize(req.StudentID)
	name := validate.Sanitize(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if studentID == "" || name == "" || email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !validate.Email(email) {
		writeError(w, http.StatusBadRequest, "Invalid email")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	exists, err := s.store.StudentExists(r.Context(), studentID, email, "")
	if err != nil {
		s.serverError(w, "student uniqueness check", err)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "Student ID or email already exists")
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		s.serverError(w, "hash password", err)
		return
	}

	student, err := s.store.CreateStudent(r.Context(), model.Student{
		StudentID:    studentID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		s.serverError(w, "create student", err)
		return
	}
	writeData(w, http.StatusCreated, student)
}

type updateStudentRequest struct {
	StudentID string  `json:"student_id"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	var req updateStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "student_id is required")
		return
	}

	if _, err := s.store.GetStudent(r.Context(), studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Student not found")
			return
		}
		s.serverError(w, "get student", err)
		return
	}

	update := repository.StudentUpdate{}
	if req.Name != nil {
		name := validate.Sanitize(*req.Name)
		if name != "" {
			update.Name = &name
		}
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if !validate.Email(email) {
			writeError(w, http.StatusBadRequest, "Invalid email")
			return
		}
		taken, err := s.store.StudentExists(r.Context(), "", email, studentID)
		if err != nil {
			s.serverError(w, "email uniqueness check", err)
			return
		}
		if taken {
			writeError(w, http.StatusConflict, "Email already exists")
			return
		}
		update.Email = &email
	}

	student, err := s.store.UpdateStudent(r.Context(), studentID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNoFields) {
			writeError(w, http.StatusBadRequest, "No fields to update")
			return
		}
		s.serverError(w, "update student", err)
		return
	}
	writeData(w, http.StatusOK, student)
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("student_id")
	if studentID == "" {
		var body struct {
			StudentID string `json:"student_id"`
		}
		if err := decodeJSON(r, &body); err == nil {
			studentID = body.StudentID
		}
	}
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "student_id is required")
		return
	}

	if _, err := s.store.GetStudent(r.Context(), studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Student not found")
			return
		}
		s.serverError(w, "get student", err)
		return
	}

	deleted, err := s.store.DeleteStudent(r.Context(), studentID)
	if err != nil {
		s.serverError(w, "delete student", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusInternalServerError, "Failed to delete student")
		return
	}
	writeMessage(w, http.StatusOK, "Student deleted")
}

type changePasswordRequest struct {
	StudentID       string `json:"student_id"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// handleChangePassword verifies the current password against the stored
// hash before persisting a new one. Passwords are opaque secrets and are
// never sanitized.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" || req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := s.store.GetStudentPasswordHash(r.Context(), studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Student not found")
			return
		}
		s.serverError(w, "get password hash", err)
		return
	}

	if err := crypto.CheckPassword(hash, req.CurrentPassword); err != nil {
		writeError(w, http.StatusUnauthorized, "Current password incorrect")
		return
	}

	newHash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		s.serverError(w, "hash password", err)
		return
	}
	if err := s.store.UpdateStudentPassword(r.Context(), studentID, newHash); err != nil {
		s.serverError(w, "update password", err)
		return
	}
	writeMessage(w, http.StatusOK, "Password updated")
}
