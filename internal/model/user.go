package model

// Role tiers, ascending privilege.
const (
	RoleStudent       = "STUDENT"
	RoleStudentSenate = "STUDENT_SENATE"
	RoleAdmin         = "ADMIN"
)

// ValidRole reports whether role is one of the known tiers.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleStudentSenate, RoleAdmin:
		return true
	}
	return false
}

// Privileged reports whether role may manage content it does not own.
func Privileged(role string) bool {
	return role == RoleStudentSenate || role == RoleAdmin
}

type User struct {
	Model
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username  string `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"`
	FirstName string `gorm:"type:varchar(50);not null" json:"firstName"`
	LastName  string `gorm:"type:varchar(50);not null" json:"lastName"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Role      string `gorm:"type:varchar(20);default:STUDENT;not null" json:"role"`
	IsActive  bool   `gorm:"default:true;not null" json:"isActive"`
}

// UserSummary is the author projection embedded in activity and comment
// responses; it deliberately excludes the email address.
type UserSummary struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (UserSummary) TableName() string {
	return "user"
}
