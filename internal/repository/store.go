// Package repository implements the per-resource stores. All statements are
// parameterized; the only interpolated tokens are sort columns and order
// direction, both taken from fixed whitelists.
package repository

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoFields is returned by updates when the patch carries no fields.
var ErrNoFields = errors.New("no fields to update")

// ListOptions carries the raw search/sort/order query values. Sort values
// outside the resource's whitelist silently fall back to its default column;
// order values other than desc fall back to ascending.
type ListOptions struct {
	Search string
	Sort   string
	Order  string
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func join(clauses []string) string {
	return strings.Join(clauses, ", ")
}

// encodeLinks serializes an array-valued column; nil becomes [].
func encodeLinks(values []string) []byte {
	if values == nil {
		values = []string{}
	}
	encoded, _ := json.Marshal(values)
	return encoded
}

// decodeLinks deserializes an array-valued column; null or malformed data
// becomes [].
func decodeLinks(raw []byte) []string {
	values := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &values)
	}
	return values
}
