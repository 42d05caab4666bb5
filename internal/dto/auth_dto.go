package dto

type JoinRequest struct {
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required,min=8"`
	RedirectTo string `form:"redirectTo"`
	Remember   bool   `form:"remember"`
}

type LoginRequest struct {
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required"`
	RedirectTo string `form:"redirectTo"`
	Remember   bool   `form:"remember"`
}
