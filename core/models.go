package core

// Role is the closed set of user roles known to the platform.
type Role string

const (
	RoleUser     Role = "USER"
	RolePremium  Role = "PREMIUM"
	RoleBusiness Role = "BUSINESS"
	RoleAdmin    Role = "ADMIN"
)

// User is the cached profile of the signed-in user.
//
// It is a snapshot taken at authentication time and may go stale until the
// next successful login or an explicit profile refetch.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// TokenPair holds the access/refresh tokens for a session.
//
// The pair is written and cleared atomically by the token store: either both
// tokens are present or neither is.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Credentials are login inputs. Never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput are registration inputs. Never persisted.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the payload returned by the authentication endpoints.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// Tokens returns the token pair carried by the response.
func (r *AuthResponse) Tokens() TokenPair {
	return TokenPair{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
}
