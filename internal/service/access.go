package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/middleware"
	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/storage"
)

var (
	errAuthRequired = errors.New("authentication required")
	errNotMember    = errors.New("you must be a member of this group")
)

// storeError maps storage errors to Connect codes.
func storeError(err error) *connect.Error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	if errors.Is(err, storage.ErrAlreadyExists) {
		return connect.NewError(connect.CodeAlreadyExists, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// caller returns the authenticated participant or an Unauthenticated error.
func caller(ctx context.Context) (models.Participant, error) {
	p := middleware.GetParticipant(ctx)
	if p.ID == "" {
		return p, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return p, nil
}

// memberGroup loads groupID and checks that the caller belongs to it.
func memberGroup(ctx context.Context, store storage.Store, groupID string) (*models.Group, models.Participant, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, me, err
	}
	if groupID == "" {
		return nil, me, invalidArgument("group_id required")
	}
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, me, storeError(err)
	}
	if !group.HasMember(me.ID) {
		return nil, me, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("%w %s", errNotMember, groupID))
	}
	return group, me, nil
}

// findNewMembers returns the people not already in members, first occurrence wins.
func findNewMembers(people, members []models.Participant) []models.Participant {
	existing := make(map[string]bool, len(members))
	for _, m := range members {
		existing[m.ID] = true
	}
	var added []models.Participant
	for _, p := range people {
		if p.ID == "" || existing[p.ID] {
			continue
		}
		existing[p.ID] = true
		added = append(added, p)
	}
	return added
}
