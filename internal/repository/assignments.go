package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"coursedesk/internal/model"
	"coursedesk/internal/validate"
)

var assignmentSortColumns = []string{"title", "due_date", "created_at"}

// AssignmentUpdate is the typed patch for PUT /assignments. Nil fields are
// left untouched; a successful update always refreshes updated_at.
type AssignmentUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	Files       []string
	SetFiles    bool
}

const dateLayout = "2006-01-02"

func (s *Store) ListAssignments(ctx context.Context, opts ListOptions) ([]model.Assignment, error) {
	query := `SELECT id, title, description, due_date, files, created_at, updated_at FROM assignments`
	args := []interface{}{}

	if opts.Search != "" {
		query += ` WHERE title ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+opts.Search+"%")
	}

	sort := validate.SortColumn(opts.Sort, "created_at", assignmentSortColumns)
	query += fmt.Sprintf(" ORDER BY %s %s", sort, validate.Order(opts.Order))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

func (s *Store) GetAssignment(ctx context.Context, id int64) (model.Assignment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, description, due_date, files, created_at, updated_at
		FROM assignments
		WHERE id = $1
	`, id)
	return scanAssignment(row)
}

func (s *Store) CreateAssignment(ctx context.Context, assignment model.Assignment) (model.Assignment, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO assignments (title, description, due_date, files)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, assignment.Title, assignment.Description, assignment.DueDate, encodeLinks(assignment.Files))
	err := row.Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if assignment.Files == nil {
		assignment.Files = []string{}
	}
	return assignment, err
}

func (s *Store) UpdateAssignment(ctx context.Context, id int64, update AssignmentUpdate) (model.Assignment, error) {
	clauses := []string{}
	args := []interface{}{}

	if update.Title != nil {
		args = append(args, *update.Title)
		clauses = append(clauses, "title = $"+strconv.Itoa(len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		clauses = append(clauses, "description = $"+strconv.Itoa(len(args)))
	}
	if update.DueDate != nil {
		args = append(args, *update.DueDate)
		clauses = append(clauses, "due_date = $"+strconv.Itoa(len(args)))
	}
	if update.SetFiles {
		args = append(args, encodeLinks(update.Files))
		clauses = append(clauses, "files = $"+strconv.Itoa(len(args)))
	}
	if len(clauses) == 0 {
		return model.Assignment{}, ErrNoFields
	}
	clauses = append(clauses, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE assignments SET %s
		WHERE id = $%d
		RETURNING id, title, description, due_date, files, created_at, updated_at
	`, join(clauses), len(args))

	return scanAssignment(s.pool.QueryRow(ctx, query, args...))
}

// DeleteAssignment removes the assignment's comments first, then the
// assignment itself. The two statements are not one transaction; a partial
// delete leaves orphan-free comments at worst.
func (s *Store) DeleteAssignment(ctx context.Context, id int64) (bool, error) {
	if _, err := s.pool.Exec(ctx, `DELETE FROM assignment_comments WHERE assignment_id = $1`, id); err != nil {
		return false, err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssignment(row rowScanner) (model.Assignment, error) {
	var (
		assignment model.Assignment
		dueDate    time.Time
		files      []byte
	)
	err := row.Scan(&assignment.ID, &assignment.Title, &assignment.Description, &dueDate, &files, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		return model.Assignment{}, err
	}
	assignment.DueDate = dueDate.Format(dateLayout)
	assignment.Files = decodeLinks(files)
	return assignment, nil
}
