package ports

import "context"

// AuthService implements the signup and signin flows. Both return a signed
// bearer token on success.
type AuthService interface {
	// SignUp registers a new account. Returns domain.ErrEmailTaken when the
	// email is already registered.
	SignUp(ctx context.Context, email, password, name string) (string, error)
	// SignIn authenticates existing credentials. Unknown email and wrong
	// password both return domain.ErrInvalidCredentials; callers must not be
	// able to tell the two apart.
	SignIn(ctx context.Context, email, password string) (string, error)
}
