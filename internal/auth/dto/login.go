package dto

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`

	IPAddress  string `json:"-"`
	UserAgent  string `json:"-"`
	DeviceInfo string `json:"-"`
}
