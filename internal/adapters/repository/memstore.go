package repository

import (
	"context"
	"strings"

	"github.com/okian/titanic/internal/domain/passenger"
)

// MemoryStore implements Store over an in-memory list. Indexes by id, class
// and survival flag are built once by NewMemoryStore; name search scans.
type MemoryStore struct {
	list    []passenger.Passenger
	indexed bool

	byID       map[int]int
	byClass    map[int][]int
	bySurvival map[int][]int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore copies ps and builds the indexes. The caller may reuse ps.
func NewMemoryStore(ps []passenger.Passenger, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		list:    append([]passenger.Passenger(nil), ps...),
		indexed: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.indexed {
		s.buildIndexes()
	}
	return s
}

func (s *MemoryStore) buildIndexes() {
	s.byID = make(map[int]int, len(s.list))
	s.byClass = make(map[int][]int)
	s.bySurvival = make(map[int][]int)
	for i, p := range s.list {
		// Keep the first occurrence of a duplicated id.
		if _, dup := s.byID[p.ID]; !dup {
			s.byID[p.ID] = i
		}
		s.byClass[p.Class] = append(s.byClass[p.Class], i)
		s.bySurvival[p.Survived] = append(s.bySurvival[p.Survived], i)
	}
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context, page, limit int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	start, end := pageBounds(page, limit, len(s.list))
	data := make([]passenger.Passenger, end-start)
	copy(data, s.list[start:end])
	return Page{Total: len(s.list), Page: page, Limit: limit, Data: data}, nil
}

// pageBounds returns the half-open window [(page-1)*limit, page*limit)
// clamped to [0, n]. Pages past the end never wrap, whatever their size.
func pageBounds(page, limit, n int) (int, int) {
	if page < 1 || limit < 1 || n == 0 {
		return 0, 0
	}
	if page-1 > (n-1)/limit {
		return n, n
	}
	start := (page - 1) * limit
	return start, start + min(limit, n-start)
}

// ByID implements Store.
func (s *MemoryStore) ByID(ctx context.Context, id int) (passenger.Passenger, error) {
	if err := ctx.Err(); err != nil {
		return passenger.Passenger{}, err
	}
	if s.indexed {
		if i, ok := s.byID[id]; ok {
			return s.list[i], nil
		}
		return passenger.Passenger{}, ErrNotFound
	}
	for _, p := range s.list {
		if p.ID == id {
			return p, nil
		}
	}
	return passenger.Passenger{}, ErrNotFound
}

// ByClass implements Store.
func (s *MemoryStore) ByClass(ctx context.Context, class int) ([]passenger.Passenger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.indexed {
		return s.pick(s.byClass[class]), nil
	}
	return s.filter(func(p passenger.Passenger) bool { return p.Class == class }), nil
}

// BySurvival implements Store.
func (s *MemoryStore) BySurvival(ctx context.Context, status int) ([]passenger.Passenger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.indexed {
		return s.pick(s.bySurvival[status]), nil
	}
	return s.filter(func(p passenger.Passenger) bool { return p.Survived == status }), nil
}

// SearchName implements Store.
func (s *MemoryStore) SearchName(ctx context.Context, q string) ([]passenger.Passenger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	return s.filter(func(p passenger.Passenger) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

// Summary implements Store.
func (s *MemoryStore) Summary(ctx context.Context) (passenger.Summary, error) {
	if err := ctx.Err(); err != nil {
		return passenger.Summary{}, err
	}
	return passenger.Summarize(s.list), nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.list)
}

func (s *MemoryStore) pick(idx []int) []passenger.Passenger {
	out := make([]passenger.Passenger, len(idx))
	for i, j := range idx {
		out[i] = s.list[j]
	}
	return out
}

func (s *MemoryStore) filter(keep func(passenger.Passenger) bool) []passenger.Passenger {
	out := []passenger.Passenger{}
	for _, p := range s.list {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
