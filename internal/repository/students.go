package repository

import (
	"context"
	"fmt"
	"strconv"

	"coursedesk/internal/model"
	"coursedesk/internal/validate"
)

var studentSortColumns = []string{"name", "student_id", "email"}

// StudentUpdate is the typed patch for PUT /students. Nil fields are left
// untouched.
type StudentUpdate struct {
	Name  *string
	Email *string
}

func (s *Store) ListStudents(ctx context.Context, opts ListOptions) ([]model.Student, error) {
	query := `SELECT id, student_id, name, email, created_at FROM students`
	args := []interface{}{}

	if opts.Search != "" {
		query += ` WHERE name ILIKE $1 OR student_id ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+opts.Search+"%")
	}

	sort := validate.SortColumn(opts.Sort, "name", studentSortColumns)
	query += fmt.Sprintf(" ORDER BY %s %s", sort, validate.Order(opts.Order))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var student model.Student
		if err := rows.Scan(&student.ID, &student.StudentID, &student.Name, &student.Email, &student.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func (s *Store) GetStudent(ctx context.Context, studentID string) (model.Student, error) {
	var student model.Student
	row := s.pool.QueryRow(ctx, `
		SELECT id, student_id, name, email, created_at
		FROM students
		WHERE student_id = $1
	`, studentID)
	err := row.Scan(&student.ID, &student.StudentID, &student.Name, &student.Email, &student.CreatedAt)
	return student, err
}

func (s *Store) GetStudentPasswordHash(ctx context.Context, studentID string) (string, error) {
	var hash string
	err := s.pool.QueryRow(ctx, `SELECT password_hash FROM students WHERE student_id = $1`, studentID).Scan(&hash)
	return hash, err
}

// StudentExists reports whether another student already holds the given
// student_id or email. excludeStudentID skips the row being updated.
func (s *Store) StudentExists(ctx context.Context, studentID, email, excludeStudentID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM students
			WHERE (student_id = $1 OR email = $2) AND student_id <> $3
		)
	`, studentID, email, excludeStudentID).Scan(&exists)
	return exists, err
}

func (s *Store) CreateStudent(ctx context.Context, student model.Student) (model.Student, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO students (student_id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, student.StudentID, student.Name, student.Email, student.PasswordHash)
	err := row.Scan(&student.ID, &student.CreatedAt)
	return student, err
}

func (s *Store) UpdateStudent(ctx context.Context, studentID string, update StudentUpdate) (model.Student, error) {
	clauses := []string{}
	args := []interface{}{}

	if update.Name != nil {
		args = append(args, *update.Name)
		clauses = append(clauses, "name = $"+strconv.Itoa(len(args)))
	}
	if update.Email != nil {
		args = append(args, *update.Email)
		clauses = append(clauses, "email = $"+strconv.Itoa(len(args)))
	}
	if len(clauses) == 0 {
		return model.Student{}, ErrNoFields
	}

	args = append(args, studentID)
	query := fmt.Sprintf(`
		UPDATE students SET %s
		WHERE student_id = $%d
		RETURNING id, student_id, name, email, created_at
	`, join(clauses), len(args))

	var student model.Student
	row := s.pool.QueryRow(ctx, query, args...)
	err := row.Scan(&student.ID, &student.StudentID, &student.Name, &student.Email, &student.CreatedAt)
	return student, err
}

func (s *Store) UpdateStudentPassword(ctx context.Context, studentID, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE students SET password_hash = $1 WHERE student_id = $2`, passwordHash, studentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("student %s not updated", studentID)
	}
	return nil
}

func (s *Store) DeleteStudent(ctx context.Context, studentID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM students WHERE student_id = $1`, studentID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
