package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/qmdesk/complaint-service/internal/domain"
	"github.com/qmdesk/complaint-service/pkg/util"
)

// DimensionResolver turns a raw categorical form value into the backing
// lookup row, staging a new row when the value is unseen free text.
//
// The resolver itself never commits: bind it to a transaction-scoped
// LookupRepository and any row it stages is persisted or rolled back together
// with the record that references it. Two concurrent requests staging the
// same new label race to the unique constraint on the canonical name; the
// loser's transaction fails with a unique violation and is rolled back as a
// whole. That narrow race is accepted, there is no application-level lock.
type DimensionResolver struct {
	store LookupRepository
}

// NewDimensionResolver builds a resolver over the given lookup store.
func NewDimensionResolver(store LookupRepository) *DimensionResolver {
	return &DimensionResolver{store: store}
}

// Resolve maps raw input to a lookup row.
//
//   - empty input resolves to no association (nil, nil)
//   - an integer input is an existing row id; an id that matches nothing also
//     resolves to no association rather than an error (long-standing behavior
//     kept deliberately, see DESIGN.md)
//   - any other input is a new label: slugified and matched against the
//     canonical name, inserting a fresh row on a miss
func (r *DimensionResolver) Resolve(ctx context.Context, raw string) (*domain.Lookup, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		row, err := r.store.GetByID(ctx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return row, nil
	}

	slug := util.Slugify(trimmed)
	row, err := r.store.GetByName(ctx, slug)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	row = &domain.Lookup{Name: slug, DisplayName: trimmed}
	if err := r.store.Insert(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}
