package resources

import (
	"fmt"

	"tradefeed/internal/models"
)

// AuthSource is the result of a login or registration.
type AuthSource struct {
	User  *models.User
	Token string
}

// AuthView is returned by login and registration.
type AuthView struct {
	User      UserView `json:"user"`
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
}

// Auth projects a user and their bearer token. Both are required.
func (t *Transformer) Auth(src AuthSource) (AuthView, error) {
	if src.User == nil {
		return AuthView{}, fmt.Errorf("%w: auth view needs a user", ErrMalformedInput)
	}
	if src.Token == "" {
		return AuthView{}, fmt.Errorf("%w: auth view needs a token", ErrMalformedInput)
	}
	return AuthView{
		User:      t.User(models.UserWith{User: *src.User}),
		Token:     src.Token,
		TokenType: "Bearer",
	}, nil
}
