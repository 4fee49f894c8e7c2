// Package talks exposes the Talks façade: conversation threads tied to a
// trip between its owner and one counterparty, and the messages they hold.
package talks

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	libclient "github.com/bisonvert/bv.libclient"
	"github.com/bisonvert/bv.libclient/mapping"
	"github.com/bisonvert/bv.libclient/trips"
	"github.com/bisonvert/bv.libclient/users"
)

// Talk is a conversation thread on a trip. FromUser is the counterparty
// who opened the talk; the other participant is the trip's owner.
type Talk struct {
	ID           int               `json:"id"`
	Trip         *trips.Trip       `json:"trip"`
	FromUser     *users.User       `json:"from_user"`
	CreationDate mapping.DateTime  `json:"creation_date"`
	Cancelled    mapping.LooseBool `json:"cancelled"`
	Validated    mapping.LooseBool `json:"validated"`
}

func (t *Talk) tripOwner() *users.User {
	if t == nil || t.Trip == nil {
		return nil
	}
	return t.Trip.User
}

// Message is one entry of a talk. FromUser flags whether the talk's
// counterparty (rather than the trip owner) wrote it.
type Message struct {
	ID       int               `json:"id"`
	Talk     *Talk             `json:"talk"`
	FromUser mapping.LooseBool `json:"from_user"`
	Text     string            `json:"message"`
	Date     mapping.DateTime  `json:"date"`
}

// Sender derives the message author from the from_user flag and the parent
// talk's participants.
func (m *Message) Sender() *users.User {
	if m.Talk == nil {
		return nil
	}
	if m.FromUser.Bool() {
		return m.Talk.FromUser
	}
	return m.Talk.tripOwner()
}

// Recipient is the participant Sender wrote to.
func (m *Message) Recipient() *users.User {
	if m.Talk == nil {
		return nil
	}
	if m.FromUser.Bool() {
		return m.Talk.tripOwner()
	}
	return m.Talk.FromUser
}

var routes = libclient.Routes{
	"talks": "/talks/",
}

// Service groups the talk operations.
type Service struct {
	client *libclient.Client
}

func NewService(c *libclient.Client) *Service {
	return &Service{client: c}
}

func (s *Service) resource() *libclient.Resource {
	return s.client.Resource(routes, "talks", "")
}

// List returns one page of the authenticated user's talks.
func (s *Service) List(ctx context.Context, page, count int) ([]*Talk, error) {
	if page <= 0 {
		page = 1
	}
	if count <= 0 {
		count = trips.DefaultPageSize
	}
	q, err := libclient.PaginationParams(page, count)
	if err != nil {
		return nil, err
	}
	res, err := s.resource().Get(ctx, "", q)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.BuildList[Talk](raw)
}

// Count returns the authenticated user's talk count.
func (s *Service) Count(ctx context.Context) (int, error) {
	res, err := s.resource().Get(ctx, "count/", nil)
	if err != nil {
		return 0, err
	}
	return mapping.Int(res.Body)
}

// Get returns one talk by id.
func (s *Service) Get(ctx context.Context, id int) (*Talk, error) {
	res, err := s.resource().Get(ctx, fmt.Sprintf("%d/", id), nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.Build[Talk](raw)
}

// ByTrip returns the talk attached to a trip, or ErrResourceDoesNotExist
// when none exists yet. This is the plain existence read Create relies on.
func (s *Service) ByTrip(ctx context.Context, tripID int) (*Talk, error) {
	res, err := s.resource().Get(ctx, fmt.Sprintf("trip/%d/", tripID), nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.Build[Talk](raw)
}

// Create opens the conversation for a trip with an initial message, or
// returns the existing talk when one is already attached to the trip.
// The existence check is a plain read, not a transactional guarantee:
// concurrent creation can still race, and uniqueness belongs to the server.
func (s *Service) Create(ctx context.Context, tripID int, message string) (*Talk, error) {
	talk, err := s.ByTrip(ctx, tripID)
	if err == nil && talk != nil {
		return talk, nil
	}
	if err != nil && !errors.Is(err, libclient.ErrResourceDoesNotExist) {
		return nil, err
	}

	form := url.Values{}
	form.Set("trip_id", strconv.Itoa(tripID))
	form.Set("message", message)

	res, err := s.resource().Post(ctx, "", form)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	created, err := mapping.Build[Talk](raw)
	if err != nil {
		return nil, err
	}
	if created == nil {
		// Legacy endpoints answer an empty body on creation.
		return s.ByTrip(ctx, tripID)
	}
	return created, nil
}

// Validate marks a talk as agreed: both sides are set to ride together
// and the server opens a temporary rating report.
func (s *Service) Validate(ctx context.Context, id int) error {
	form := url.Values{}
	form.Set("validate", "true")
	res, err := s.resource().Put(ctx, fmt.Sprintf("%d/", id), form)
	if err != nil {
		return err
	}
	return libclient.ErrorFromStatus("talks.validate", res.StatusCode)
}

// Cancel soft-cancels a talk with an explanatory message. There is no hard
// delete on the wire: the talk is flagged cancelled and kept.
func (s *Service) Cancel(ctx context.Context, id int, message string) error {
	form := url.Values{}
	form.Set("cancel", "true")
	form.Set("message", message)
	res, err := s.resource().Put(ctx, fmt.Sprintf("%d/", id), form)
	if err != nil {
		return err
	}
	return libclient.ErrorFromStatus("talks.cancel", res.StatusCode)
}

// Messages lists all messages of a talk.
func (s *Service) Messages(ctx context.Context, talkID int) ([]*Message, error) {
	res, err := s.resource().Get(ctx, fmt.Sprintf("%d/messages/", talkID), nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.BuildList[Message](raw)
}

// CountMessages returns the number of messages in a talk.
func (s *Service) CountMessages(ctx context.Context, talkID int) (int, error) {
	res, err := s.resource().Get(ctx, fmt.Sprintf("%d/messages/count/", talkID), nil)
	if err != nil {
		return 0, err
	}
	return mapping.Int(res.Body)
}

// AddMessage appends a message to an existing talk.
func (s *Service) AddMessage(ctx context.Context, talkID int, message string) error {
	form := url.Values{}
	form.Set("message", message)
	_, err := s.resource().Post(ctx, fmt.Sprintf("%d/messages/", talkID), form)
	return err
}
