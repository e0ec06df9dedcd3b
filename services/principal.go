package services

import (
	"context"
	"errors"
	"fmt"

	"go-storefront/models"
	"go-storefront/resource"
)

// mutateRetries bounds how often a read-modify-write is restarted after a
// failed or conflicting remote write before the error surfaces to the user.
const mutateRetries = 3

func notFound(err error) bool {
	return errors.Is(err, resource.ErrNotFound) || errors.Is(err, ErrNotFound)
}

// mutatePrincipal runs one read-modify-write cycle against a principal
// record: fetch fresh state, apply the mutation, PATCH the named fields with
// the version counter bumped. Because every mutation overwrites whole
// collections, writing from stale state would silently discard concurrent
// updates; rereading before each attempt and checking the version echoed by
// the store keeps local state from staying authoritative after a failure.
func mutatePrincipal(ctx context.Context, users UserStore, userID string,
	apply func(*models.Principal) error,
	fields func(*models.Principal) map[string]interface{},
) (*models.Principal, error) {
	var lastErr error
	for attempt := 0; attempt < mutateRetries; attempt++ {
		p, err := users.UserByID(ctx, userID)
		if err != nil {
			if notFound(err) {
				return nil, ErrNotFound
			}
			return nil, err
		}

		if err := apply(p); err != nil {
			return nil, err
		}

		patch := fields(p)
		patch["version"] = p.Version + 1

		updated, err := users.UpdateUser(ctx, userID, patch)
		if err != nil {
			lastErr = err
			continue
		}
		if updated.Version != p.Version+1 {
			lastErr = ErrVersionConflict
			continue
		}
		return updated, nil
	}
	return nil, fmt.Errorf("persist principal %s: %w", userID, lastErr)
}
