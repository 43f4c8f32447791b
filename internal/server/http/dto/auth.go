package dto

// SendOTPRequest carries the phone number an OTP should be delivered to.
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

// VerifyOTPRequest carries the phone and the six digit code.
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// AdminLoginRequest describes the back-office credential payload.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginResponse returns the authenticated operator identity.
type AdminLoginResponse struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ErrorResponse carries a human readable failure message.
type ErrorResponse struct {
	Message string `json:"message"`
}
