package platform

import (
	"errors"

	"github.com/mwops/mwops/domain/model"
)

// unwrapHookError strips the hook-name wrapper from typed domain errors so
// callers receive the field-scoped error directly. Unexpected errors keep
// the wrapper, which names the failing hook.
func unwrapHookError(err error) error {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var ce *model.ConflictError
	if errors.As(err, &ce) {
		return ce
	}
	var cc *model.ClusterConfigError
	if errors.As(err, &cc) {
		return cc
	}
	for _, sentinel := range []error{
		model.ErrProjectNotFound, model.ErrClusterNotFound, model.ErrS3StorageNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}
