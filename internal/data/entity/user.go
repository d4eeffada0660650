package entity

type UserRole string

const (
	RoleStandard  UserRole = "standard"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	Base
	Name           string   `db:"name"`
	Email          string   `db:"email"`
	PasswordHash   string   `db:"password"`
	ProfilePicture *string  `db:"profile_picture"`
	Role           UserRole `db:"role"`
}
