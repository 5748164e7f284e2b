package dto

import "blog_backend/internal/feature/auth/domain/entity"

// SignupReq represents the request body for POST /users.
type SignupReq struct {
	Name     string `json:"name" binding:"required,max=100"`
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=150"`
	Password string `json:"password" binding:"required,max=72"`
}

// UpdateUserReq is the body of PUT /users and also its response.
type UpdateUserReq struct {
	Name     string `json:"name" binding:"required,max=100"`
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=150"`
}

// ChangePasswordReq is the body of PATCH /users/change-password.
type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,max=72"`
}

// MessageRes carries a human readable message.
type MessageRes struct {
	Message string `json:"message"`
}

// UserView is the public representation of a user.
type UserView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// NewUserView converts a user entity. A nil user yields the zero view.
func NewUserView(u *entity.User) UserView {
	if u == nil {
		return UserView{}
	}
	return UserView{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

// NewUserViews converts a list of users.
func NewUserViews(users []*entity.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views
}
