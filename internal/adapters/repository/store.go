// Package repository defines the passenger store interface and errors.
package repository

import (
	"context"

	"github.com/okian/titanic/internal/domain/passenger"
)

// Page is one slice of the passenger list.
type Page struct {
	Total int
	Page  int
	Limit int
	Data  []passenger.Passenger
}

// Store provides read access to the passenger collection. Implementations
// are immutable after construction and safe for concurrent use.
type Store interface {
	// List returns the slice [(page-1)*limit, page*limit) of the list in
	// file order. Out of range pages return an empty slice, not an error.
	List(ctx context.Context, page, limit int) (Page, error)

	// ByID returns the first passenger with the given id.
	// Returns ErrNotFound if there is none.
	ByID(ctx context.Context, id int) (passenger.Passenger, error)

	// ByClass returns the passengers of a class in file order.
	ByClass(ctx context.Context, class int) ([]passenger.Passenger, error)

	// BySurvival returns the passengers with the given survival flag in file order.
	BySurvival(ctx context.Context, status int) ([]passenger.Passenger, error)

	// SearchName returns passengers whose name contains q, ignoring case.
	SearchName(ctx context.Context, q string) ([]passenger.Passenger, error)

	// Summary computes the aggregate statistics.
	Summary(ctx context.Context) (passenger.Summary, error)

	// Count returns the number of passengers held.
	Count(ctx context.Context) int
}
