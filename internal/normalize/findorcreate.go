package normalize

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NaturalKey identifies a reference row by human-meaningful fields.
// Implementations are TeamKey, PlayerKey and VenueKey.
type NaturalKey interface {
	table() string
	// key returns the columns that make up the natural key
	key() ([]string, []any)
	// attributes returns extra columns written only when the row is created
	attributes() ([]string, []any)
}

// TeamKey is a team by name
type TeamKey struct {
	Name string
}

func (k TeamKey) table() string                 { return "teams" }
func (k TeamKey) key() ([]string, []any)        { return []string{"name"}, []any{k.Name} }
func (k TeamKey) attributes() ([]string, []any) { return nil, nil }

// PlayerKey is a player by name and birth year; a zero year means unknown
type PlayerKey struct {
	Name      string
	BirthYear int
}

func (k PlayerKey) table() string { return "players" }
func (k PlayerKey) key() ([]string, []any) {
	return []string{"name", "birth_year"}, []any{k.Name, nullInt(k.BirthYear)}
}
func (k PlayerKey) attributes() ([]string, []any) { return nil, nil }

// VenueKey is a pool by name and city. Address details are stored on
// creation and never overwritten.
type VenueKey struct {
	PoolName       string
	City           string
	Street         string
	PostalCode     string
	FullAddress    string
	GoogleMapsLink string
}

func (k VenueKey) table() string { return "venues" }
func (k VenueKey) key() ([]string, []any) {
	return []string{"pool_name", "city"}, []any{k.PoolName, nullString(k.City)}
}
func (k VenueKey) attributes() ([]string, []any) {
	return []string{"street", "postal_code", "full_address", "google_maps_link"},
		[]any{nullString(k.Street), nullString(k.PostalCode), nullString(k.FullAddress), nullString(k.GoogleMapsLink)}
}

// FindOrCreate returns the id of the reference row matching k, inserting it
// first if no row shares the natural key. Existing rows are never updated.
// NULL key components match NULL.
func FindOrCreate(ctx context.Context, q Querier, k NaturalKey) (id int64, created bool, err error) {
	cols, vals := k.key()

	conds := make([]string, len(cols))
	for i, c := range cols {
		conds[i] = c + " IS ?"
	}
	err = q.QueryRowContext(ctx,
		"SELECT id FROM "+k.table()+" WHERE "+strings.Join(conds, " AND ")+" ORDER BY id LIMIT 1",
		vals...,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("looking up %s: %w", k.table(), err)
	}

	extraCols, extraVals := k.attributes()
	cols = append(cols, extraCols...)
	vals = append(vals, extraVals...)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	res, err := q.ExecContext(ctx,
		"INSERT INTO "+k.table()+" ("+strings.Join(cols, ", ")+") VALUES ("+placeholders+")",
		vals...,
	)
	if err != nil {
		return 0, false, fmt.Errorf("inserting into %s: %w", k.table(), err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, false, fmt.Errorf("reading %s id: %w", k.table(), err)
	}
	return id, true, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
