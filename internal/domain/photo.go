package domain

import (
	"time"

	"github.com/google/uuid"
)

// Photo is a raw image attached to a cruise. SortOrder defines display
// order and is not guaranteed unique.
type Photo struct {
	ID        uuid.UUID `json:"id"`
	CruiseID  uuid.UUID `json:"cruise_id"`
	ImageData []byte    `json:"image_data"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
