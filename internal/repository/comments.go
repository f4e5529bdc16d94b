package repository

import (
	"context"
	"fmt"

	"coursedesk/internal/model"
)

// CommentFamily names the table holding a resource's comments. The two
// values below are the only instances; table and column names are never
// taken from request input.
type CommentFamily struct {
	table        string
	parentColumn string
}

var (
	AssignmentComments = CommentFamily{table: "assignment_comments", parentColumn: "assignment_id"}
	WeekComments       = CommentFamily{table: "week_comments", parentColumn: "week_id"}
)

func (s *Store) ListComments(ctx context.Context, family CommentFamily, parentID int64) ([]model.Comment, error) {
	query := fmt.Sprintf(`
		SELECT id, %s, author, text, created_at
		FROM %s
		WHERE %s = $1
		ORDER BY created_at ASC
	`, family.parentColumn, family.table, family.parentColumn)

	rows, err := s.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(&comment.ID, &comment.ParentID, &comment.Author, &comment.Text, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (s *Store) CreateComment(ctx context.Context, family CommentFamily, comment model.Comment) (model.Comment, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, author, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, family.table, family.parentColumn)

	row := s.pool.QueryRow(ctx, query, comment.ParentID, comment.Author, comment.Text)
	err := row.Scan(&comment.ID, &comment.CreatedAt)
	return comment, err
}

func (s *Store) DeleteComment(ctx context.Context, family CommentFamily, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, family.table), id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CommentExists is used by delete handlers to distinguish 404 from a
// failed delete.
func (s *Store) CommentExists(ctx context.Context, family CommentFamily, id int64) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, family.table)
	err := s.pool.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}
