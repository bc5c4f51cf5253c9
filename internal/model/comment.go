package model

type Comment struct {
	Model
	Content    string      `gorm:"type:varchar(500);not null" json:"content"`
	ActivityID uint        `gorm:"not null;index" json:"activityId"`
	AuthorID   uint        `gorm:"not null" json:"authorId"`
	Author     UserSummary `gorm:"foreignKey:AuthorID" json:"author"`
}
