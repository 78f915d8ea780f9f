package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'member'" json:"role"` // admin|member
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the leaderboard identity of a member. The participation counter
// and last-activity timestamp are cached aggregates over ParticipationLog and
// are only ever written together with a log insert or delete.
type Profile struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                  *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nil for admin-created profiles
	FullName                string     `gorm:"not null" json:"full_name"`
	Division                string     `json:"division,omitempty"`
	AvatarURL               string     `json:"avatar_url,omitempty"`
	TotalParticipationCount int        `gorm:"not null;default:0" json:"total_participation_count"`
	LastActivityAt          *time.Time `json:"last_activity_at"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`

	// Relations
	User              *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ParticipationLogs []ParticipationLog `gorm:"foreignKey:ProfileID" json:"participation_logs,omitempty"`
}

// Competition titles are unique per case-insensitive comparison: TitleKey is
// the normalized form of Title and carries the uniqueness constraint.
type Competition struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	TitleKey    string    `gorm:"uniqueIndex;not null" json:"-"`
	Date        time.Time `gorm:"not null" json:"date"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"not null;default:'Other'" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VerificationRequest is a member's claim to have participated in a
// competition. Status moves pending -> approved or pending -> rejected and
// never out of a terminal state. Requests are kept as an audit trail.
type VerificationRequest struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"profile_id"`
	CompetitionID     *uuid.UUID `gorm:"type:uuid;index" json:"competition_id"` // must be set to approve
	Message           string     `gorm:"type:text;not null" json:"message"`
	ParticipationDate *time.Time `json:"participation_date"`
	Status            string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Relations
	Profile     Profile      `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Competition *Competition `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`
}

// ParticipationLog is the record of record for an approved participation.
// A (profile, competition) pair may appear at most once; CreatedAt serves as
// the verified-at timestamp for display.
type ParticipationLog struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_profile_competition" json:"profile_id"`
	CompetitionID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_profile_competition" json:"competition_id"`
	AdminID           *uuid.UUID `gorm:"type:uuid;index" json:"admin_id"` // recorder, nil for legacy rows
	Notes             string     `gorm:"type:text" json:"notes,omitempty"`
	ParticipationDate *time.Time `json:"participation_date"`
	CreatedAt         time.Time  `json:"created_at"`

	// Relations
	Profile     Profile     `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Competition Competition `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`
	Admin       *User       `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (c *Competition) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (r *VerificationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (l *ParticipationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
