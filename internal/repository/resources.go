package repository

import (
	"context"
	"fmt"
	"strconv"

	"coursedesk/internal/model"
	"coursedesk/internal/validate"
)

var resourceSortColumns = []string{"title", "created_at"}

// ResourceUpdate is the typed patch for PUT /resources.
type ResourceUpdate struct {
	Title       *string
	Description *string
	Link        *string
}

func (s *Store) ListResources(ctx context.Context, opts ListOptions) ([]model.Resource, error) {
	query := `SELECT id, resource_id, title, description, link, created_at, updated_at FROM resources`
	args := []interface{}{}

	if opts.Search != "" {
		query += ` WHERE title ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+opts.Search+"%")
	}

	sort := validate.SortColumn(opts.Sort, "title", resourceSortColumns)
	query += fmt.Sprintf(" ORDER BY %s %s", sort, validate.Order(opts.Order))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []model.Resource{}
	for rows.Next() {
		var resource model.Resource
		if err := rows.Scan(&resource.ID, &resource.ResourceID, &resource.Title, &resource.Description, &resource.Link, &resource.CreatedAt, &resource.UpdatedAt); err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}
	return resources, rows.Err()
}

func (s *Store) GetResource(ctx context.Context, resourceID string) (model.Resource, error) {
	var resource model.Resource
	row := s.pool.QueryRow(ctx, `
		SELECT id, resource_id, title, description, link, created_at, updated_at
		FROM resources
		WHERE resource_id = $1
	`, resourceID)
	err := row.Scan(&resource.ID, &resource.ResourceID, &resource.Title, &resource.Description, &resource.Link, &resource.CreatedAt, &resource.UpdatedAt)
	return resource, err
}

func (s *Store) ResourceExists(ctx context.Context, resourceID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM resources WHERE resource_id = $1)`, resourceID).Scan(&exists)
	return exists, err
}

func (s *Store) CreateResource(ctx context.Context, resource model.Resource) (model.Resource, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO resources (resource_id, title, description, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, resource.ResourceID, resource.Title, resource.Description, resource.Link)
	err := row.Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
	return resource, err
}

func (s *Store) UpdateResource(ctx context.Context, resourceID string, update ResourceUpdate) (model.Resource, error) {
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
	if update.Link != nil {
		args = append(args, *update.Link)
		clauses = append(clauses, "link = $"+strconv.Itoa(len(args)))
	}
	if len(clauses) == 0 {
		return model.Resource{}, ErrNoFields
	}
	clauses = append(clauses, "updated_at = now()")

	args = append(args, resourceID)
	query := fmt.Sprintf(`
		UPDATE resources SET %s
		WHERE resource_id = $%d
		RETURNING id, resource_id, title, description, link, created_at, updated_at
	`, join(clauses), len(args))

	var resource model.Resource
	row := s.pool.QueryRow(ctx, query, args...)
	err := row.Scan(&resource.ID, &resource.ResourceID, &resource.Title, &resource.Description, &resource.Link, &resource.CreatedAt, &resource.UpdatedAt)
	return resource, err
}

func (s *Store) DeleteResource(ctx context.Context, resourceID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resources WHERE resource_id = $1`, resourceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
