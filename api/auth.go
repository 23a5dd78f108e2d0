package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"library-portal/library"
)

// ErrNoToken means the backend accepted a login but returned no token.
var ErrNoToken = errors.New("login reply carried no token")

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Email string   `json:"email"`
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (library.Session, error) {
	var resp authResponse
	err := c.do(ctx, library.GuestSession(), http.MethodPost, "/login", credentials{email, password}, &resp)
	if err != nil {
		return library.Session{}, err
	}
	if resp.Token == "" {
		return library.Session{}, ErrNoToken
	}
	if resp.Email == "" {
		resp.Email = email
	}
	return library.NewSession(resp.Token, resp.Email, resp.Roles), nil
}

// Register creates an account. The token the backend returns is ignored;
// the user signs in explicitly afterwards.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, library.GuestSession(), http.MethodPost, "/register", credentials{email, password}, nil)
}
