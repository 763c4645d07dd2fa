package postgres

import (
	"context"
	"log/slog"
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/room"
	"roomboard/internal/infra"
	"roomboard/internal/pkg/errs"
	"roomboard/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	DuplicateRoomMessage       = "A room with this name already exists in this organization"
	UnknownOrganizationMessage = "Organization not found"
)

const roomColumns = `
	r.id, r.name, r.capacity, r.location, r.floor, r.description,
	r.amenities, r.equipment, r.images, r.organization_id, o.name`

const roomFrom = `
	FROM rooms r
	JOIN organizations o ON o.id = r.organization_id`

// RoomStore serves both the read contract of the room list and the write
// side of the room editor.
type RoomStore struct {
	db     DBTX
	loc    *time.Location
	logger *slog.Logger
}

func NewRoomStore(pool *pgxpool.Pool, loc *time.Location, logger *slog.Logger) *RoomStore {
	return NewRoomStoreWithDB(pool, loc, logger)
}

func NewRoomStoreWithDB(db DBTX, loc *time.Location, logger *slog.Logger) *RoomStore {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RoomStore{db: db, loc: loc, logger: logger}
}

func (s *RoomStore) FetchAllRooms(ctx context.Context) ([]room.Room, error) {
	return s.queryRooms(ctx, "failed to fetch rooms",
		`SELECT`+roomColumns+roomFrom+` ORDER BY o.name, r.name`)
}

func (s *RoomStore) FetchOrganizationRooms(ctx context.Context, organizationID uuid.UUID) ([]room.Room, error) {
	return s.queryRooms(ctx, "failed to fetch organization rooms",
		`SELECT`+roomColumns+roomFrom+` WHERE r.organization_id = $1 ORDER BY r.name`,
		organizationID)
}

// FetchAvailableInRange returns rooms with no approved or pending booking
// overlapping [start, end).
func (s *RoomStore) FetchAvailableInRange(ctx context.Context, start, end time.Time) ([]room.Room, error) {
	return s.queryRooms(ctx, "failed to fetch available rooms",
		`SELECT`+roomColumns+roomFrom+`
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id
			  AND b.status IN ('APPROVED', 'PENDING')
			  AND b.start_time < $2
			  AND b.end_time > $1
		)
		ORDER BY o.name, r.name`,
		pgconv.TimeToPgtype(start), pgconv.TimeToPgtype(end))
}

// FetchAvailability annotates every room with its slot grid and bookings for
// the given local day.
func (s *RoomStore) FetchAvailability(ctx context.Context, date calendar.Date) ([]room.RoomWithAvailability, error) {
	rooms, err := s.FetchAllRooms(ctx)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := date.In(s.loc), date.AddDays(1).In(s.loc)
	rows, err := s.db.Query(ctx, `
		SELECT b.room_id, u.name, u.email, u.profile_picture,
		       b.start_time, b.end_time, b.purpose, b.status, b.attendee_count
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.start_time < $2 AND b.end_time > $1
		ORDER BY b.start_time`,
		pgconv.TimeToPgtype(dayStart), pgconv.TimeToPgtype(dayEnd))
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindOf(err), "failed to fetch bookings", err)
	}

	byRoom := make(map[uuid.UUID][]room.BookingSummary)
	_, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (struct{}, error) {
		var (
			roomID    uuid.UUID
			b         room.BookingSummary
			picture   pgtype.Text
			start     pgtype.Timestamptz
			end       pgtype.Timestamptz
			status    string
			attendees pgtype.Int4
		)
		if err := row.Scan(&roomID, &b.UserName, &b.UserEmail, &picture, &start, &end, &b.Purpose, &status, &attendees); err != nil {
			return struct{}{}, err
		}
		b.UserProfilePicture = pgconv.StringPtrFromPgtype(picture)
		b.StartTime = pgconv.TimeFromPgtype(start).In(s.loc)
		b.EndTime = pgconv.TimeFromPgtype(end).In(s.loc)
		b.Status = room.BookingStatus(status)
		b.AttendeeCount = pgconv.IntPtrFromPgtype(attendees)
		byRoom[roomID] = append(byRoom[roomID], b)
		return struct{}{}, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan bookings", err)
	}

	out := make([]room.RoomWithAvailability, len(rooms))
	for i, r := range rooms {
		bookings := byRoom[r.ID]
		out[i] = room.RoomWithAvailability{
			Room:           r,
			TimeSlots:      room.BuildTimeSlots(date, bookings, s.loc),
			TodaysBookings: bookings,
		}
	}
	return out, nil
}

func (s *RoomStore) FetchOrganizations(ctx context.Context) ([]room.Organization, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM organizations ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindOf(err), "failed to fetch organizations", err)
	}
	orgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (room.Organization, error) {
		var o room.Organization
		err := row.Scan(&o.ID, &o.Name)
		return o, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan organizations", err)
	}
	return orgs, nil
}

func (s *RoomStore) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	rows, err := s.db.Query(ctx, `SELECT`+roomColumns+roomFrom+` WHERE r.id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindOf(err), "failed to find room", err)
	}
	r, err := pgx.CollectExactlyOneRow(rows, scanRoom)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "room not found", err)
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan room", err)
	}
	return &r, nil
}

func (s *RoomStore) Create(ctx context.Context, r *room.Room) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx, `
		INSERT INTO rooms (organization_id, name, capacity, location, floor, description, amenities, equipment, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		r.OrganizationID, r.Name, r.Capacity, r.Location,
		pgconv.StringToNullablePgtype(r.Floor), pgconv.StringToNullablePgtype(r.Description),
		nonNil(r.Amenities), nonNil(r.Equipment), string(imagesOrEmpty(r.Images)),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, s.writeErr("failed to create room", err)
	}
	return id, nil
}

func (s *RoomStore) Update(ctx context.Context, r *room.Room) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE rooms
		SET name = $2, capacity = $3, location = $4, floor = $5, description = $6,
		    amenities = $7, equipment = $8, images = $9, updated_at = NOW()
		WHERE id = $1`,
		r.ID, r.Name, r.Capacity, r.Location,
		pgconv.StringToNullablePgtype(r.Floor), pgconv.StringToNullablePgtype(r.Description),
		nonNil(r.Amenities), nonNil(r.Equipment), string(imagesOrEmpty(r.Images)),
	)
	if err != nil {
		return s.writeErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "room not found", nil)
	}
	return nil
}

func (s *RoomStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return s.writeErr("failed to delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "room not found", nil)
	}
	return nil
}

func (s *RoomStore) queryRooms(ctx context.Context, msg, sql string, args ...any) ([]room.Room, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindOf(err), msg, err)
	}
	rooms, err := pgx.CollectRows(rows, scanRoom)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, msg, err)
	}
	return rooms, nil
}

// writeErr attaches a user-displayable message for constraint violations.
func (s *RoomStore) writeErr(msg string, err error) error {
	kind := infra.KindOf(err)
	wrapped := infra.WrapRepoErr(s.logger, kind, msg, err)
	switch kind {
	case infra.KindDuplicateKey:
		return errs.WithUserMessage(wrapped, DuplicateRoomMessage)
	case infra.KindForeignKeyViolated:
		return errs.WithUserMessage(wrapped, UnknownOrganizationMessage)
	default:
		return wrapped
	}
}

func scanRoom(row pgx.CollectableRow) (room.Room, error) {
	var (
		r           room.Room
		floor, desc pgtype.Text
		images      string
		orgName     string
	)
	err := row.Scan(&r.ID, &r.Name, &r.Capacity, &r.Location, &floor, &desc,
		&r.Amenities, &r.Equipment, &images, &r.OrganizationID, &orgName)
	if err != nil {
		return room.Room{}, err
	}
	r.Floor = pgconv.StringFromPgtype(floor)
	r.Description = pgconv.StringFromPgtype(desc)
	r.Images = room.ImageList(images)
	r.OrganizationName = &orgName
	return r, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func imagesOrEmpty(l room.ImageList) room.ImageList {
	if l == "" {
		return room.NewImageList(nil)
	}
	return l
}
