package forms_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-account-client/forms"
)

func TestLoginSchema(t *testing.T) {
	schema := forms.LoginSchema()

	valid := map[string]string{
		forms.FieldEmail:    "a@b.com",
		forms.FieldPassword: "secret1",
		forms.FieldCaptcha:  "tok",
	}
	require.True(t, schema.Valid(valid))

	tests := []struct {
		name      string
		mutate    func(map[string]string)
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing email",
			mutate:    func(v map[string]string) { v[forms.FieldEmail] = "" },
			wantField: forms.FieldEmail,
			wantMsg:   "Email is required",
		},
		{
			name:      "bad email shape",
			mutate:    func(v map[string]string) { v[forms.FieldEmail] = "not-an-email" },
			wantField: forms.FieldEmail,
			wantMsg:   "Invalid email address",
		},
		{
			name:      "short password",
			mutate:    func(v map[string]string) { v[forms.FieldPassword] = "abc" },
			wantField: forms.FieldPassword,
			wantMsg:   "Password must be at least 6 characters long",
		},
		{
			name:      "missing captcha",
			mutate:    func(v map[string]string) { v[forms.FieldCaptcha] = "" },
			wantField: forms.FieldCaptcha,
			wantMsg:   "Please complete the captcha",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := make(map[string]string, len(valid))
			for k, v := range valid {
				values[k] = v
			}
			tc.mutate(values)

			violations := schema.Validate(values)
			require.Len(t, violations, 1)
			require.Equal(t, tc.wantField, violations[0].Field)
			require.Equal(t, tc.wantMsg, violations[0].Message)
		})
	}
}

func TestSignupSchemaPasswordConfirmation(t *testing.T) {
	schema := forms.SignupSchema()
	values := map[string]string{
		forms.FieldName:            "John Doe",
		forms.FieldEmail:           "a@b.com",
		forms.FieldPassword:        "secret1",
		forms.FieldConfirmPassword: "secret2",
		forms.FieldCaptcha:         "tok",
	}

	violations := schema.Validate(values)
	require.Len(t, violations, 1)
	require.Equal(t, forms.FieldConfirmPassword, violations[0].Field)
	require.Equal(t, "Passwords do not match", violations[0].Message)

	values[forms.FieldConfirmPassword] = "secret1"
	require.True(t, schema.Valid(values))
}

func TestChangePasswordSchema(t *testing.T) {
	schema := forms.ChangePasswordSchema()
	values := map[string]string{
		forms.FieldCurrentPassword: "secret1",
		forms.FieldNewPassword:     "secret2",
		forms.FieldConfirmPassword: "secret2",
	}
	require.True(t, schema.Valid(values))

	values[forms.FieldConfirmPassword] = "other2"
	require.False(t, schema.Valid(values))
}

func TestChangeEmailSchema(t *testing.T) {
	schema := forms.ChangeEmailSchema()
	require.True(t, schema.Valid(map[string]string{
		forms.FieldNewEmail: "new@b.com",
		forms.FieldPassword: "secret1",
	}))
	require.False(t, schema.Valid(map[string]string{
		forms.FieldNewEmail: "new@b.com",
	}))
}

func TestImageConstraint(t *testing.T) {
	c := forms.NewImageConstraint()

	require.NoError(t, c.Validate(100*1024, "image/png"))
	require.NoError(t, c.Validate(forms.MaxImageBytes, "image/webp"))

	err := c.Validate(forms.MaxImageBytes+1, "image/png")
	require.Error(t, err)
	require.Contains(t, err.Error(), "200KB")

	err = c.Validate(1024, "application/pdf")
	require.Error(t, err)
	require.Contains(t, err.Error(), "jpeg, png and webp")
}

func TestDirty(t *testing.T) {
	saved := map[string]string{forms.FieldName: "John Doe"}

	require.False(t, forms.Dirty(map[string]string{forms.FieldName: "John Doe"}, saved))
	require.True(t, forms.Dirty(map[string]string{forms.FieldName: "Jane Doe"}, saved))
	require.True(t, forms.Dirty(map[string]string{forms.FieldName: "John Doe", "image": "avatar.png"}, saved))
}

func TestCanSubmit(t *testing.T) {
	// Submit is gated by dirty AND valid AND NOT pending.
	require.True(t, forms.CanSubmit(true, true, false))
	require.False(t, forms.CanSubmit(false, true, false))
	require.False(t, forms.CanSubmit(true, false, false))
	require.False(t, forms.CanSubmit(true, true, true))
}

func TestStaleProfileNameNeverReachesWorkflow(t *testing.T) {
	schema := forms.UpdateProfileSchema()
	saved := map[string]string{forms.FieldName: "John Doe"}

	// Submitted name equals the last-resolved profile name and no new
	// image is attached: the form is valid but clean, so submit stays
	// disabled.
	values := map[string]string{forms.FieldName: "John Doe"}
	require.True(t, schema.Valid(values))
	require.False(t, forms.CanSubmit(forms.Dirty(values, saved), schema.Valid(values), false))

	values[forms.FieldName] = "Jane Doe"
	require.True(t, forms.CanSubmit(forms.Dirty(values, saved), schema.Valid(values), false))
}
