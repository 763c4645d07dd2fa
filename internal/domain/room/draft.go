package room

import (
	"errors"
	"sort"
	"strings"

	"github.com/jinzhu/copier"
)

const (
	MaxRoomNameLength    = 255
	MaxDescriptionLength = 2000
	MaxCapacity          = 1000
)

var ErrInvalidDraft = errors.New("invalid room draft")

// ValidationError collects per-field messages. It matches ErrInvalidDraft
// under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e.Fields[k]
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDraft
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

// RoomDraft is the create/edit form state. NewImageFiles holds paths handed
// back by the image upload service for files added in this form session.
type RoomDraft struct {
	Name          string   `json:"name"`
	Capacity      int      `json:"capacity"`
	Location      string   `json:"location"`
	Floor         string   `json:"floor"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	Equipment     []string `json:"equipment"`
	NewImageFiles []string `json:"newImageFiles"`
}

func NewDraft() RoomDraft {
	return RoomDraft{}
}

// DraftFromRoom seeds an edit form. Slices are deep-copied so editing the
// draft never touches the room.
func DraftFromRoom(r Room) (RoomDraft, error) {
	var d RoomDraft
	if err := copier.CopyWithOption(&d, &r, copier.Option{DeepCopy: true}); err != nil {
		return RoomDraft{}, err
	}
	return d, nil
}

func (d RoomDraft) Normalize() RoomDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Location = strings.TrimSpace(d.Location)
	d.Floor = strings.TrimSpace(d.Floor)
	d.Description = strings.TrimSpace(d.Description)
	d.Amenities = compact(d.Amenities)
	d.Equipment = compact(d.Equipment)
	d.NewImageFiles = compact(d.NewImageFiles)
	return d
}

func (d RoomDraft) Validate() error {
	d = d.Normalize()
	var v ValidationError
	switch {
	case d.Name == "":
		v.add("name", "Room name is required")
	case len(d.Name) > MaxRoomNameLength:
		v.add("name", "Room name is too long (max 255 characters)")
	}
	if d.Capacity < 1 || d.Capacity > MaxCapacity {
		v.add("capacity", "Capacity must be between 1 and 1000")
	}
	if d.Location == "" {
		v.add("location", "Location is required")
	}
	if len(d.Description) > MaxDescriptionLength {
		v.add("description", "Description is too long (max 2000 characters)")
	}
	if len(v.Fields) > 0 {
		return &v
	}
	return nil
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
