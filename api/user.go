package api

import "io"

// User is the profile the identity endpoint returns.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"gRecaptchaResponse"`
}

type ResendVerificationRequest struct {
	Email        string `json:"email"`
	CaptchaToken string `json:"gRecaptchaResponse"`
}

type ForgotPasswordRequest struct {
	Email        string `json:"email"`
	CaptchaToken string `json:"gRecaptchaResponse"`
}

type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"gRecaptchaResponse"`
}

// LoginResponse carries the new token pair. Expiries are in seconds.
type LoginResponse struct {
	Message               string `json:"message"`
	AccessToken           string `json:"accessToken"`
	RefreshToken          string `json:"refreshToken"`
	AccessTokenExpiresIn  int64  `json:"accessTokenExpiresIn"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn"`
}

// MessageResponse is the success body of every mutation that returns no
// payload beyond a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

type UserDetailsResponse struct {
	Message string `json:"message"`
	Data    User   `json:"data"`
}

// LoginRecord is one entry of the account's login history. Timestamp is
// kept as the server sent it; formatting is up to the caller.
type LoginRecord struct {
	ID        int64  `json:"id"`
	IP        string `json:"ip"`
	Platform  string `json:"platform"`
	Browser   string `json:"browser"`
	Timestamp string `json:"timestamp"`
}

// LoginHistoryResponse holds the history rows. Data is nil when the
// server has no records (it sends JSON null).
type LoginHistoryResponse struct {
	Message string        `json:"message"`
	Data    []LoginRecord `json:"data"`
}

// ImageUpload is a profile image attached to an update-profile request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type changeEmailRequest struct {
	Password string `json:"password"`
	NewEmail string `json:"newEmail"`
}
