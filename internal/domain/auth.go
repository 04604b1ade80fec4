package domain

type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

func (m AuthMode) Valid() bool {
	switch m {
	case AuthModeLogin, AuthModeSignup:
		return true
	default:
		return false
	}
}

func (m AuthMode) Label() string {
	if m == AuthModeSignup {
		return "Sign Up"
	}

	return "Sign In"
}

type Credentials struct {
	Email    string
	Password string
}
