// Package users exposes the Users façade of the BisonVert API.
package users

import (
	"context"
	"fmt"

	libclient "github.com/bisonvert/bv.libclient"
	"github.com/bisonvert/bv.libclient/mapping"
)

// User is the owner of trips, talks and ratings.
type User struct {
	ID        int               `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Validated mapping.LooseBool `json:"validated"`
}

// IsAuthenticated mirrors the host-framework contract: a decoded user is
// by definition a logged-in one.
func (u *User) IsAuthenticated() bool { return u != nil }

func (u *User) String() string {
	if u == nil {
		return ""
	}
	return u.Username
}

var routes = libclient.Routes{
	"active_user": "/users/active/",
	"user":        "/users/",
}

// Service groups the user operations.
type Service struct {
	client *libclient.Client
}

func NewService(c *libclient.Client) *Service {
	return &Service{client: c}
}

// Active returns the user the client is authenticated as.
func (s *Service) Active(ctx context.Context) (*User, error) {
	res, err := s.client.Resource(routes, "active_user", "").Get(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.Build[User](raw)
}

// Get returns one user by id.
func (s *Service) Get(ctx context.Context, id int) (*User, error) {
	res, err := s.client.Resource(routes, "user", "").Get(ctx, fmt.Sprintf("%d/", id), nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.Build[User](raw)
}
