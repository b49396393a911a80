package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Generation struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          string         `json:"user_id"`
	Kind            string         `json:"kind"` // photo, video
	SourceImageURL  string         `json:"source_image_url"`
	Style           string         `json:"style"`
	AspectRatio     string         `json:"aspect_ratio,omitempty"`
	Background      string         `json:"background,omitempty"`
	Lighting        string         `json:"lighting,omitempty"`
	CameraAngle     string         `json:"camera_angle,omitempty"`
	Status          string         `json:"status"` // processing, completed, failed
	GeneratedImages datatypes.JSON `json:"generated_images,omitempty"`
	FailureReason   string         `json:"failure_reason,omitempty"`
	CreditsCharged  int            `json:"credits_charged"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
