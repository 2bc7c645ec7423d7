package dto

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`

	IPAddress  string `json:"-"`
	UserAgent  string `json:"-"`
	DeviceInfo string `json:"-"`
}

type LogoutInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
