package api

import (
	"context"
	"fmt"
	"net/http"

	"library-portal/library"
)

func (c *Client) Profile(ctx context.Context, s library.Session) (library.Profile, error) {
	var p library.Profile
	if err := c.do(ctx, s, http.MethodGet, "/users/profile", nil, &p); err != nil {
		return library.Profile{}, err
	}
	return p.In(c.location), nil
}

func (c *Client) UpdateProfile(ctx context.Context, s library.Session, form library.ProfileForm) (library.Profile, error) {
	var p library.Profile
	if err := c.do(ctx, s, http.MethodPut, "/users/profile", form, &p); err != nil {
		return library.Profile{}, err
	}
	return p.In(c.location), nil
}

func (c *Client) Users(ctx context.Context, s library.Session) ([]library.User, error) {
	var users []library.User
	if err := c.do(ctx, s, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, s library.Session, form library.CreateUserForm) (library.User, error) {
	var u library.User
	if err := c.do(ctx, s, http.MethodPost, "/users", form, &u); err != nil {
		return library.User{}, err
	}
	return u, nil
}

func (c *Client) DeleteUser(ctx context.Context, s library.Session, id int64) error {
	return c.do(ctx, s, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}
