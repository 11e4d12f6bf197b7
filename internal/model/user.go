package model

type GetUserRequest struct {
	ID string `uri:"id" json:"id"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	Phone     string `json:"phone"`
	CityID    string `json:"city_id"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
}

type UpdateUserResponse struct {
	User User `json:"user"`
}
