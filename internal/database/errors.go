package database

import (
	"context"
	"errors"

	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// classify maps driver errors onto the application taxonomy. Duplicate keys are
// left to the callers that know which constraint they hit.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var sse topology.ServerSelectionError
	switch {
	case errors.As(err, &sse),
		mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded):
		return apperror.StorageUnavailable(err)
	default:
		return apperror.Internal(err)
	}
}
