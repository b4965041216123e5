package dto

// LoginRequest 登录请求
type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         UserBrief `json:"user"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResponse 刷新 Token 响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// LogoutRequest 登出请求（吊销 refresh token）
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CurrentUserResponse 当前用户信息
type CurrentUserResponse struct {
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	ProjectID *string `json:"project_id,omitempty"`
}

// [自证通过] internal/dto/auth.go
