package response

import (
	"meditrack/internal/data/entity"
)

// UserResponse adalah user summary yang dikirim setelah signup/login.
// Password tidak pernah keluar dari server.
type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Role     *string `json:"role,omitempty"`
}

// CurrentUserResponse untuk GET /api/auth/user.
type CurrentUserResponse struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Role     *string `json:"role,omitempty"`
}

// RoleResponse untuk GET/POST /api/auth/role.
type RoleResponse struct {
	Role string `json:"role"`
}

func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	}
	if user.Role != nil {
		role := string(*user.Role)
		resp.Role = &role
	}
	return resp
}

func CurrentUserToResponse(user *entity.User) CurrentUserResponse {
	resp := CurrentUserResponse{
		UserID:   user.ID.String(),
		Username: user.Username,
	}
	if user.Role != nil {
		role := string(*user.Role)
		resp.Role = &role
	}
	return resp
}
