package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"coursedesk/internal/model"
	"coursedesk/internal/validate"
)

var weekSortColumns = []string{"title", "start_date", "created_at"}

// WeekUpdate is the typed patch for PUT /weeks.
type WeekUpdate struct {
	Title       *string
	StartDate   *string
	Description *string
	Links       []string
	SetLinks    bool
}

func (s *Store) ListWeeks(ctx context.Context, opts ListOptions) ([]model.Week, error) {
	query := `SELECT id, title, start_date, description, links, created_at, updated_at FROM weeks`
	args := []interface{}{}

	if opts.Search != "" {
		query += ` WHERE title ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+opts.Search+"%")
	}

	sort := validate.SortColumn(opts.Sort, "start_date", weekSortColumns)
	query += fmt.Sprintf(" ORDER BY %s %s", sort, validate.Order(opts.Order))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weeks := []model.Week{}
	for rows.Next() {
		week, err := scanWeek(rows)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, week)
	}
	return weeks, rows.Err()
}

func (s *Store) GetWeek(ctx context.Context, id int64) (model.Week, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, start_date, description, links, created_at, updated_at
		FROM weeks
		WHERE id = $1
	`, id)
	return scanWeek(row)
}

func (s *Store) CreateWeek(ctx context.Context, week model.Week) (model.Week, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO weeks (title, start_date, description, links)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, week.Title, week.StartDate, week.Description, encodeLinks(week.Links))
	err := row.Scan(&week.ID, &week.CreatedAt, &week.UpdatedAt)
	if week.Links == nil {
		week.Links = []string{}
	}
	return week, err
}

func (s *Store) UpdateWeek(ctx context.Context, id int64, update WeekUpdate) (model.Week, error) {
	clauses := []string{}
	args := []interface{}{}

	if update.Title != nil {
		args = append(args, *update.Title)
		clauses = append(clauses, "title = $"+strconv.Itoa(len(args)))
	}
	if update.StartDate != nil {
		args = append(args, *update.StartDate)
		clauses = append(clauses, "start_date = $"+strconv.Itoa(len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		clauses = append(clauses, "description = $"+strconv.Itoa(len(args)))
	}
	if update.SetLinks {
		args = append(args, encodeLinks(update.Links))
		clauses = append(clauses, "links = $"+strconv.Itoa(len(args)))
	}
	if len(clauses) == 0 {
		return model.Week{}, ErrNoFields
	}
	clauses = append(clauses, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE weeks SET %s
		WHERE id = $%d
		RETURNING id, title, start_date, description, links, created_at, updated_at
	`, join(clauses), len(args))

	return scanWeek(s.pool.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteWeek(ctx context.Context, id int64) (bool, error) {
	if _, err := s.pool.Exec(ctx, `DELETE FROM week_comments WHERE week_id = $1`, id); err != nil {
		return false, err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM weeks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanWeek(row rowScanner) (model.Week, error) {
	var (
		week      model.Week
		startDate time.Time
		links     []byte
	)
	err := row.Scan(&week.ID, &week.Title, &startDate, &week.Description, &links, &week.CreatedAt, &week.UpdatedAt)
	if err != nil {
		return model.Week{}, err
	}
	week.StartDate = startDate.Format(dateLayout)
	week.Links = decodeLinks(links)
	return week, nil
}
