package commands

import (
	"context"
	"log/slog"

	"roomboard/internal/domain/room"
	"roomboard/internal/domain/user"
	"roomboard/internal/infra"
	"roomboard/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=room.go -destination=../../../tests/mock/commands/room.go -package=commandsmock

const (
	SubmitInProgressMessage = "Please wait, your previous request is still being processed"
	SaveFailedMessage       = "Failed to save room"
	DeleteFailedMessage     = "Failed to delete room"
)

var (
	ErrRoomNotFound          = errs.New("room not found")
	ErrSubmitInProgress      = errs.WithUserMessage(errs.New("submission in progress"), SubmitInProgressMessage)
	ErrFormTokenRequired     = errs.New("form token required")
	ErrNotRoomAdmin          = errs.New("role cannot manage rooms")
	ErrOrganizationRequired  = errs.New("organization required")
	ErrForbiddenOrganization = errs.New("room belongs to another organization")
)

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	Create(ctx context.Context, r *room.Room) (uuid.UUID, error)
	Update(ctx context.Context, r *room.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomCacheInvalidator drops cached listings after a mutation.
type RoomCacheInvalidator interface {
	InvalidateRooms(ctx context.Context) error
}

type SaveRoomInput struct {
	FormToken string
	Draft     room.RoomDraft
	// OrganizationID is required from system admins on create. Organization
	// admins always create inside their own organization.
	OrganizationID *uuid.UUID
}

type RoomCommands interface {
	CreateRoom(ctx context.Context, p user.Principal, in SaveRoomInput) (*room.Room, error)
	UpdateRoom(ctx context.Context, p user.Principal, id uuid.UUID, in SaveRoomInput) (*room.Room, error)
	DeleteRoom(ctx context.Context, p user.Principal, formToken string, id uuid.UUID) error
}

type roomCommandsImpl struct {
	repo   RoomRepository
	cache  RoomCacheInvalidator
	guard  *SubmitGuard
	logger *slog.Logger
}

func NewRoomCommands(repo RoomRepository, cache RoomCacheInvalidator, guard *SubmitGuard, logger *slog.Logger) RoomCommands {
	if guard == nil {
		guard = NewSubmitGuard()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &roomCommandsImpl{repo: repo, cache: cache, guard: guard, logger: logger}
}

func (c *roomCommandsImpl) CreateRoom(ctx context.Context, p user.Principal, in SaveRoomInput) (*room.Room, error) {
	if !p.Role.IsAdmin() {
		return nil, ErrNotRoomAdmin
	}
	release, err := c.guard.Acquire(p.UserID, in.FormToken)
	if err != nil {
		return nil, err
	}
	defer release()

	orgID, err := creationOrganization(p, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	draft := in.Draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	r := &room.Room{OrganizationID: orgID}
	applyDraft(r, draft)
	id, err := c.repo.Create(ctx, r)
	if err != nil {
		return nil, errs.Wrap(err, "create room")
	}
	r.ID = id

	c.invalidate(ctx, "create", id)
	return r, nil
}

func (c *roomCommandsImpl) UpdateRoom(ctx context.Context, p user.Principal, id uuid.UUID, in SaveRoomInput) (*room.Room, error) {
	if !p.Role.IsAdmin() {
		return nil, ErrNotRoomAdmin
	}
	release, err := c.guard.Acquire(p.UserID, in.FormToken)
	if err != nil {
		return nil, err
	}
	defer release()

	draft := in.Draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	r, err := c.loadManaged(ctx, p, id)
	if err != nil {
		return nil, err
	}

	applyDraft(r, draft)
	if err := c.repo.Update(ctx, r); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRoomNotFound)
		}
		return nil, errs.Wrap(err, "update room")
	}

	c.invalidate(ctx, "update", id)
	return r, nil
}

func (c *roomCommandsImpl) DeleteRoom(ctx context.Context, p user.Principal, formToken string, id uuid.UUID) error {
	if !p.Role.IsAdmin() {
		return ErrNotRoomAdmin
	}
	release, err := c.guard.Acquire(p.UserID, formToken)
	if err != nil {
		return err
	}
	defer release()

	if _, err := c.loadManaged(ctx, p, id); err != nil {
		return err
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrRoomNotFound)
		}
		return errs.Wrap(err, "delete room")
	}

	c.invalidate(ctx, "delete", id)
	return nil
}

func (c *roomCommandsImpl) loadManaged(ctx context.Context, p user.Principal, id uuid.UUID) (*room.Room, error) {
	r, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRoomNotFound)
		}
		return nil, errs.Wrap(err, "load room")
	}
	if r == nil {
		return nil, ErrRoomNotFound
	}
	if p.Role == user.RoleOrgAdmin && r.OrganizationID != p.OrganizationScope() {
		return nil, ErrForbiddenOrganization
	}
	return r, nil
}

func (c *roomCommandsImpl) invalidate(ctx context.Context, op string, id uuid.UUID) {
	if c.cache == nil {
		return
	}
	if err := c.cache.InvalidateRooms(ctx); err != nil {
		c.logger.WarnContext(ctx, "room cache invalidation failed",
			"op", op, "room_id", id.String(), "error", err)
	}
}

func creationOrganization(p user.Principal, requested *uuid.UUID) (uuid.UUID, error) {
	if p.Role == user.RoleOrgAdmin {
		if p.OrganizationScope() == uuid.Nil {
			return uuid.Nil, ErrOrganizationRequired
		}
		return p.OrganizationScope(), nil
	}
	if requested == nil || *requested == uuid.Nil {
		return uuid.Nil, ErrOrganizationRequired
	}
	return *requested, nil
}

// applyDraft copies form fields onto r. Newly uploaded images are appended
// after the ones already stored.
func applyDraft(r *room.Room, d room.RoomDraft) {
	r.Name = d.Name
	r.Capacity = d.Capacity
	r.Location = d.Location
	r.Floor = d.Floor
	r.Description = d.Description
	r.Amenities = d.Amenities
	r.Equipment = d.Equipment
	r.Images = r.Images.Append(d.NewImageFiles...)
}
