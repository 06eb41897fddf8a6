package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmdesk/complaint-service/internal/domain"
)

// fakeLookupStore is an in-memory LookupRepository keyed by canonical name.
type fakeLookupStore struct {
	byName map[string]*domain.Lookup
	byID   map[int64]*domain.Lookup
	nextID int64
}

func newFakeLookupStore() *fakeLookupStore {
	return &fakeLookupStore{
		byName: make(map[string]*domain.Lookup),
		byID:   make(map[int64]*domain.Lookup),
	}
}

func (s *fakeLookupStore) GetByID(_ context.Context, id int64) (*domain.Lookup, error) {
	row, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (s *fakeLookupStore) GetByName(_ context.Context, name string) (*domain.Lookup, error) {
	row, ok := s.byName[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (s *fakeLookupStore) Insert(_ context.Context, row *domain.Lookup) error {
	s.nextID++
	row.ID = s.nextID
	stored := *row
	s.byName[row.Name] = &stored
	s.byID[row.ID] = &stored
	return nil
}

func (s *fakeLookupStore) List(_ context.Context) ([]domain.Lookup, error) {
	out := make([]domain.Lookup, 0, len(s.byID))
	for _, row := range s.byID {
		out = append(out, *row)
	}
	return out, nil
}

func TestResolveEmptyInput(t *testing.T) {
	resolver := NewDimensionResolver(newFakeLookupStore())

	for _, raw := range []string{"", "   ", "\t"} {
		row, err := resolver.Resolve(context.Background(), raw)
		require.NoError(t, err)
		assert.Nil(t, row, "input %q must resolve to no association", raw)
	}
}

func TestResolveByID(t *testing.T) {
	store := newFakeLookupStore()
	require.NoError(t, store.Insert(context.Background(), &domain.Lookup{Name: "ontode", DisplayName: "Öntöde"}))
	resolver := NewDimensionResolver(store)

	row, err := resolver.Resolve(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "Öntöde", row.DisplayName)
}

func TestResolveUnknownIDMeansNoAssociation(t *testing.T) {
	resolver := NewDimensionResolver(newFakeLookupStore())

	row, err := resolver.Resolve(context.Background(), "9999")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestResolveFreeTextStagesNewRow(t *testing.T) {
	store := newFakeLookupStore()
	resolver := NewDimensionResolver(store)

	row, err := resolver.Resolve(context.Background(), "  Sörgyár ")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "sorgyar", row.Name)
	assert.Equal(t, "Sörgyár", row.DisplayName)
	assert.NotZero(t, row.ID)
}

func TestResolveDedupsOnCanonicalName(t *testing.T) {
	store := newFakeLookupStore()
	resolver := NewDimensionResolver(store)

	first, err := resolver.Resolve(context.Background(), "Sörgyár")
	require.NoError(t, err)

	// Different spelling, same canonical name: no second row.
	second, err := resolver.Resolve(context.Background(), "sorgyar")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Sörgyár", second.DisplayName)
	assert.Len(t, store.byName, 1)
}
