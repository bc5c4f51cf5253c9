package model

import "time"

// Activity statuses.
const (
	StatusUpcoming  = "UPCOMING"
	StatusOngoing   = "ONGOING"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Activity struct {
	Model
	Title        string      `gorm:"type:varchar(200);not null" json:"title"`
	Description  string      `gorm:"type:varchar(2000);not null" json:"description"`
	Location     string      `gorm:"type:varchar(255)" json:"location"`
	StartTime    time.Time   `gorm:"not null;index" json:"startTime"`
	EndTime      *time.Time  `json:"endTime"` // strictly after StartTime when set
	Status       string      `gorm:"type:varchar(20);default:UPCOMING;not null;index" json:"status"`
	ImageURL     string      `gorm:"type:varchar(255)" json:"imageUrl"`
	MaxAttendees *int        `json:"maxAttendees"`
	Tags         []string    `gorm:"type:json;serializer:json" json:"tags"`
	CategoryID   uint        `gorm:"not null;index" json:"categoryId"`
	Category     Category    `gorm:"foreignKey:CategoryID" json:"category"`
	AuthorID     uint        `gorm:"not null;index" json:"authorId"`
	Author       UserSummary `gorm:"foreignKey:AuthorID" json:"author"`
	Comments     []Comment   `gorm:"foreignKey:ActivityID" json:"comments,omitempty"`
}
