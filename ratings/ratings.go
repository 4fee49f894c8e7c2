// Package ratings exposes the Ratings façade: marks users leave each other
// after a shared ride, and the temporary reports that precede them.
package ratings

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	libclient "github.com/bisonvert/bv.libclient"
	"github.com/bisonvert/bv.libclient/mapping"
	"github.com/bisonvert/bv.libclient/users"
)

// Mark bounds, both inclusive. The historical variants disagreed on the
// lower bound; zero is accepted here.
const (
	MinMark = 0
	MaxMark = 5
)

// Rating is a mark one user gave another.
type Rating struct {
	ID           int          `json:"id"`
	Mark         int          `json:"mark"`
	Comment      string       `json:"comment"`
	User         *users.User  `json:"user"`
	FromUser     *users.User  `json:"from_user"`
	CreationDate mapping.Date `json:"creation_date"`
}

// TempRating is an open rating report created when a talk is validated,
// waiting for both participants to rate each other.
type TempRating struct {
	ID        int               `json:"id"`
	User1     *users.User       `json:"user1"`
	User2     *users.User       `json:"user2"`
	StartDate mapping.Date      `json:"start_date"`
	EndDate   mapping.Date      `json:"end_date"`
	Date      mapping.Date      `json:"date"`
	Opened    mapping.LooseBool `json:"opened"`
}

var routes = libclient.Routes{
	"ratings":     "/ratings/",
	"tempratings": "/temp-ratings/",
}

// Service groups the rating operations.
type Service struct {
	client *libclient.Client
}

func NewService(c *libclient.Client) *Service {
	return &Service{client: c}
}

func (s *Service) list(ctx context.Context, key, sub string) ([]*Rating, error) {
	res, err := s.client.Resource(routes, key, "").Get(ctx, sub, nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.BuildList[Rating](raw)
}

// Given lists the ratings the authenticated user handed out.
func (s *Service) Given(ctx context.Context) ([]*Rating, error) {
	return s.list(ctx, "ratings", "given/")
}

// Received lists the ratings the authenticated user received.
func (s *Service) Received(ctx context.Context) ([]*Rating, error) {
	return s.list(ctx, "ratings", "received/")
}

// Pending lists the open temporary reports awaiting a mark.
func (s *Service) Pending(ctx context.Context) ([]*TempRating, error) {
	res, err := s.client.Resource(routes, "tempratings", "").Get(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.BuildList[TempRating](raw)
}

// Get returns one rating; ids are taken by absolute value.
func (s *Service) Get(ctx context.Context, id int) (*Rating, error) {
	res, err := s.client.Resource(routes, "ratings", "").Get(ctx, fmt.Sprintf("%d/", abs(id)), nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.Build[Rating](raw)
}

// GetTemp returns one temporary report; ids are taken by absolute value.
func (s *Service) GetTemp(ctx context.Context, id int) (*TempRating, error) {
	res, err := s.client.Resource(routes, "tempratings", "").Get(ctx, fmt.Sprintf("%d/", abs(id)), nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.Build[TempRating](raw)
}

// Rate closes a temporary report with a mark and a comment. The mark is
// coerced to its absolute value and must land in [MinMark, MaxMark]; an
// out-of-range mark fails before any request goes out.
func (s *Service) Rate(ctx context.Context, tempRatingID, mark int, comment string) error {
	mark = abs(mark)
	if mark < MinMark || mark > MaxMark {
		return &libclient.APIError{
			Op:   "ratings.rate",
			Kind: libclient.KindInvalidArgument,
			Err:  fmt.Errorf("%w: mark must be between %d and %d, both included; %d given", libclient.ErrInvalidArgument, MinMark, MaxMark, mark),
		}
	}

	form := url.Values{}
	form.Set("temprating_id", strconv.Itoa(abs(tempRatingID)))
	form.Set("mark", strconv.Itoa(mark))
	form.Set("comment", comment)

	_, err := s.client.Resource(routes, "ratings", "").Post(ctx, "", form)
	return err
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
