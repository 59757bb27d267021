package kube

import (
	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/mwops/mwops/domain/model"
)

// classify maps an API server error onto the controller's failure
// taxonomy. AlreadyExists and NotFound never reach this function; the
// create/delete paths absorb them first.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case apierrors.IsUnauthorized(err), apierrors.IsForbidden(err):
		return &model.ClusterFatalError{Err: err}
	case apierrors.IsInvalid(err), apierrors.IsBadRequest(err), apierrors.IsMethodNotSupported(err):
		return &model.ClusterFatalError{Err: err}
	case apierrors.IsConflict(err):
		return &model.ConflictError{Message: "unexpected resource conflict", Err: err}
	case apierrors.IsServerTimeout(err), apierrors.IsTimeout(err), apierrors.IsTooManyRequests(err),
		apierrors.IsServiceUnavailable(err), apierrors.IsInternalError(err), apierrors.IsUnexpectedServerError(err):
		return &model.ClusterTransientError{Err: err}
	case apierrors.IsNotFound(err):
		return err
	}
	if _, ok := err.(apierrors.APIStatus); ok {
		// An API response we have no better bucket for; not retryable.
		return &model.ClusterFatalError{Err: err}
	}
	// Anything that never reached the API server (DNS, dial, TLS timeouts)
	// is worth retrying.
	return &model.ClusterTransientError{Err: err}
}
