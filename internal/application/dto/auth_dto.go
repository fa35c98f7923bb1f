package dto

// SignupRequest entrada de registro.
type SignupRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// SignupUser usuario devuelto tras el registro.
type SignupUser struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	RoleID string `json:"roleId"`
}

// SignupResponse salida de registro.
type SignupResponse struct {
	Message string     `json:"message"`
	User    SignupUser `json:"user"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser usuario devuelto tras el login. RoleID es null si la asignación falló.
type LoginUser struct {
	ID     string  `json:"id"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	RoleID *string `json:"roleId"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}
