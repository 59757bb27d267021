package platform

import (
	"context"

	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/logging"
	"github.com/mwops/mwops/internal/secrets"
)

// GetStateInput identifies the platform whose state is requested.
type GetStateInput struct {
	ID int64 `json:"id"`
}

// GetStateOutput contains the state with the password redacted.
type GetStateOutput struct {
	State *model.PlatformState `json:"state"`
}

// GetState returns the platform's state row. The stored password
// ciphertext is replaced with the redaction sentinel; other credentials
// are returned verbatim.
func (u *UseCase) GetState(ctx context.Context, in *GetStateInput) (*GetStateOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrPlatformNotFound
	}
	if _, err := u.Repos.Platform.Get(ctx, in.ID); err != nil {
		return nil, err
	}
	state, err := u.Repos.State.Load(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, model.ErrStateNotFound
	}
	state.DBPass = secrets.Redact(state.DBPass)
	return &GetStateOutput{State: state}, nil
}

// UpdateStateInput patches the state row. A non-nil Active that differs
// from the stored value triggers Apply (false to true) or Decommission
// (true to false) after the flip is persisted.
type UpdateStateInput struct {
	ID      int64   `json:"id"`
	Active  *bool   `json:"active"`
	Message *string `json:"message"`
}

// UpdateStateOutput contains the state after the patch and any triggered
// operation.
type UpdateStateOutput struct {
	State *model.PlatformState `json:"state"`
}

// UpdateState applies a state patch and drives the deployment toward the
// requested intent when the active flag flips.
func (u *UseCase) UpdateState(ctx context.Context, in *UpdateStateInput) (*UpdateStateOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrPlatformNotFound
	}
	if _, err := u.Repos.Platform.Get(ctx, in.ID); err != nil {
		return nil, err
	}
	state, err := u.Repos.State.Load(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &model.PlatformState{PlatformID: in.ID, Active: true, Status: model.StatusPending}
	}

	flipped := in.Active != nil && *in.Active != state.Active
	if in.Active != nil {
		state.Active = *in.Active
	}
	if in.Message != nil {
		state.Message = *in.Message
	}
	if err := u.Repos.State.Upsert(ctx, state); err != nil {
		return nil, err
	}

	if flipped {
		logger := logging.FromContext(ctx)
		if state.Active {
			logger.Info(ctx, "state flipped to active, applying", "platform_id", in.ID)
			if _, err := u.Apply(ctx, &ApplyInput{ID: in.ID}); err != nil {
				return nil, err
			}
		} else {
			logger.Info(ctx, "state flipped to inactive, decommissioning", "platform_id", in.ID)
			if _, err := u.Decommission(ctx, &DecommissionInput{ID: in.ID}); err != nil {
				return nil, err
			}
		}
		state, err = u.Repos.State.Load(ctx, in.ID)
		if err != nil {
			return nil, err
		}
	}
	return &UpdateStateOutput{State: state}, nil
}
