package service

import (
	"context"
	"errors"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// requireOwned centralizes the record-level ownership check every owned
// resource needs: fetch the record, compare its owner against the acting
// user. A missing record and a foreign record are indistinguishable to the
// caller; both come back as domain.ErrForbidden, so record ids cannot be
// probed across users. notFound is the repository's sentinel for the entity
// being fetched; any other fetch error propagates unchanged.
func requireOwned[T any](
	ctx context.Context,
	fetch func(context.Context, int64) (T, error),
	ownerID func(T) int64,
	id, actorID int64,
	notFound error,
) (T, error) {
	var zero T

	rec, err := fetch(ctx, id)
	if err != nil {
		if errors.Is(err, notFound) {
			return zero, domain.ErrForbidden
		}
		return zero, err
	}

	if ownerID(rec) != actorID {
		return zero, domain.ErrForbidden
	}
	return rec, nil
}
