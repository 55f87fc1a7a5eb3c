package forms

// Canonical field names shared by the form schemas.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldNewEmail        = "newEmail"
	FieldCaptcha         = "captchaToken"
)

const (
	msgEmailRequired   = "Email is required"
	msgEmailInvalid    = "Invalid email address"
	msgPasswordTooWeak = "Password must be at least 6 characters long"
	msgCaptchaMissing  = "Please complete the captcha"
	msgPasswordsDiffer = "Passwords do not match"
)

// LoginSchema validates the login form.
func LoginSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: FieldEmail, Rules: []Rule{Required(msgEmailRequired), EmailShape(msgEmailInvalid)}},
			{Name: FieldPassword, Rules: []Rule{MinLen(6, msgPasswordTooWeak)}},
			{Name: FieldCaptcha, Rules: []Rule{Required(msgCaptchaMissing)}},
		},
	}
}

// SignupSchema validates the signup form, including the password
// confirmation match.
func SignupSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: FieldName, Rules: []Rule{Required("Name is required")}},
			{Name: FieldEmail, Rules: []Rule{Required(msgEmailRequired), EmailShape(msgEmailInvalid)}},
			{Name: FieldPassword, Rules: []Rule{MinLen(6, msgPasswordTooWeak)}},
			{Name: FieldConfirmPassword, Rules: []Rule{MinLen(6, msgPasswordTooWeak)}},
			{Name: FieldCaptcha, Rules: []Rule{Required(msgCaptchaMissing)}},
		},
		Equal: []Equality{
			{A: FieldPassword, B: FieldConfirmPassword, Message: msgPasswordsDiffer},
		},
	}
}

// RecoverySchema validates the forgot-password and resend-verification
// forms, which only need an address and a challenge.
func RecoverySchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: FieldEmail, Rules: []Rule{Required(msgEmailRequired), EmailShape(msgEmailInvalid)}},
			{Name: FieldCaptcha, Rules: []Rule{Required(msgCaptchaMissing)}},
		},
	}
}

// ChangePasswordSchema validates the password-change form.
func ChangePasswordSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: FieldCurrentPassword, Rules: []Rule{MinLen(6, msgPasswordTooWeak)}},
			{Name: FieldNewPassword, Rules: []Rule{MinLen(6, msgPasswordTooWeak)}},
			{Name: FieldConfirmPassword, Rules: []Rule{MinLen(6, msgPasswordTooWeak)}},
		},
		Equal: []Equality{
			{A: FieldNewPassword, B: FieldConfirmPassword, Message: msgPasswordsDiffer},
		},
	}
}

// ChangeEmailSchema validates the email-change form.
func ChangeEmailSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: FieldNewEmail, Rules: []Rule{Required(msgEmailRequired), EmailShape(msgEmailInvalid)}},
			{Name: FieldPassword, Rules: []Rule{Required("Password is required")}},
		},
	}
}

// UpdateProfileSchema validates the profile form.
func UpdateProfileSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: FieldName, Rules: []Rule{Required("Name is required")}},
		},
	}
}
