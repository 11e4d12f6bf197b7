package model

type AccessToken struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type RegisterResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

func (r *RegisterResponse) AccessTokenInfo() string {
	return r.AccessToken
}

func (r *RegisterResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.User.ID}
}

func (r *LoginResponse) AccessTokenInfo() string {
	return r.AccessToken
}

func (r *LoginResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.User.ID}
}
