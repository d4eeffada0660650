package request

type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=standard organizer admin"`
}
