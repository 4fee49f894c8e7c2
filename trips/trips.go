package trips

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	libclient "github.com/bisonvert/bv.libclient"
	"github.com/bisonvert/bv.libclient/mapping"
)

// DefaultPageSize is the server's page length when none is asked for.
const DefaultPageSize = 20

var routes = libclient.Routes{
	"trip":     "/trips/",
	"city":     "/cities/",
	"search":   "/trips/search/",
	"cartypes": "/cartypes/",
}

// Service groups the trip operations.
type Service struct {
	client *libclient.Client
}

func NewService(c *libclient.Client) *Service {
	return &Service{client: c}
}

func (s *Service) resource(key string) *libclient.Resource {
	return s.client.Resource(routes, key, "")
}

func pageQuery(page, count int, orderedBy string) (url.Values, error) {
	if page <= 0 {
		page = 1
	}
	if count <= 0 {
		count = DefaultPageSize
	}
	q, err := libclient.PaginationParams(page, count)
	if err != nil {
		return nil, err
	}
	if orderedBy != "" {
		q.Set("ordered_by", orderedBy)
	}
	return q, nil
}

// List returns one page of public trips, ordered by orderedBy (the server
// default is by date). An empty page decodes to an empty slice, never nil.
func (s *Service) List(ctx context.Context, page, count int, orderedBy string) ([]*Trip, error) {
	q, err := pageQuery(page, count, orderedBy)
	if err != nil {
		return nil, err
	}
	res, err := s.resource("trip").Get(ctx, "", q)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.BuildList[Trip](raw)
}

// Count returns the number of trips registered on the server.
func (s *Service) Count(ctx context.Context) (int, error) {
	res, err := s.resource("trip").Get(ctx, "count/", nil)
	if err != nil {
		return 0, err
	}
	return mapping.Int(res.Body)
}

// Get returns one trip by id.
func (s *Service) Get(ctx context.Context, id int) (*Trip, error) {
	res, err := s.resource("trip").Get(ctx, fmt.Sprintf("%d/", id), nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.Build[Trip](raw)
}

// Add creates a trip. Empty fields are filtered out of the submission.
func (s *Service) Add(ctx context.Context, form Form) (*Trip, error) {
	res, err := s.resource("trip").Post(ctx, "", encodeFields(filterEmptyFields(form.fields())))
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.Build[Trip](raw)
}

// CountMine returns the authenticated user's trip count.
func (s *Service) CountMine(ctx context.Context) (int, error) {
	res, err := s.resource("trip").Get(ctx, "count_mine/", nil)
	if err != nil {
		return 0, err
	}
	return mapping.Int(res.Body)
}

// ListMine returns one page of the authenticated user's trips.
func (s *Service) ListMine(ctx context.Context, page, count int, orderedBy string) ([]*Trip, error) {
	q, err := pageQuery(page, count, orderedBy)
	if err != nil {
		return nil, err
	}
	res, err := s.resource("trip").Get(ctx, "mine/", q)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.BuildList[Trip](raw)
}

// Edit submits new trip fields. Empty fields are filtered out as on Add,
// so an unset field never clears its server-side value. A 200 answer
// decodes to the updated trip; any other status is a domain validation
// failure carrying the parsed error payload, not a transport error.
func (s *Service) Edit(ctx context.Context, id int, form Form) (*Trip, error) {
	res, err := s.resource("trip").Put(ctx, fmt.Sprintf("%d/", id), encodeFields(filterEmptyFields(form.fields())))
	if err != nil {
		return nil, err
	}

	if res.StatusCode != 200 {
		fe := &libclient.EditFormError{Status: res.StatusCode, Payload: map[string]any{}}
		if err := json.Unmarshal(res.Body, &fe.Payload); err != nil {
			// Non-JSON error bodies are kept raw so nothing is lost.
			fe.RawBody = string(res.Body)
		}
		return nil, fe
	}

	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.Build[Trip](raw)
}

// SetAlert flips the email alert flag on a trip.
func (s *Service) SetAlert(ctx context.Context, id int, value bool) error {
	form := url.Values{}
	form.Set("alert", strconv.FormatBool(value))
	res, err := s.resource("trip").Put(ctx, fmt.Sprintf("%d/", id), form)
	if err != nil {
		return err
	}
	return libclient.ErrorFromStatus("trips.set_alert", res.StatusCode)
}

// Delete removes a trip. Not-found and forbidden failures propagate from
// the resource client untouched.
func (s *Service) Delete(ctx context.Context, id int) error {
	_, err := s.resource("trip").Delete(ctx, fmt.Sprintf("%d/", id))
	return err
}

// SearchCriteria is the open-ended search filter, with named fields in
// place of the historical keyword soup.
type SearchCriteria struct {
	TripID          int
	Type            *TripType
	Date            string // DD/MM/YYYY, converted on the wire
	DepartureCity   string
	ArrivalCity     string
	DepartureRadius float64
	ArrivalRadius   float64
}

func (c SearchCriteria) query() (sub string, q url.Values, err error) {
	q = url.Values{}

	if c.Date != "" {
		d, err := mapping.DateToAPI(c.Date)
		if err != nil {
			return "", nil, err
		}
		q.Set("date", d)
	}
	if c.DepartureCity != "" {
		q.Set("departure_city", c.DepartureCity)
	}
	if c.ArrivalCity != "" {
		q.Set("arrival_city", c.ArrivalCity)
	}
	if c.DepartureRadius > 0 {
		q.Set("departure_radius", strconv.FormatFloat(c.DepartureRadius, 'f', -1, 64))
	}
	if c.ArrivalRadius > 0 {
		q.Set("arrival_radius", strconv.FormatFloat(c.ArrivalRadius, 'f', -1, 64))
	}

	// A demand matches against offers and an offer against demands: the
	// server is asked to filter the opposite category.
	if c.Type != nil {
		q.Set("trip_type", strconv.Itoa(int(*c.Type)))
		switch *c.Type {
		case TripDemand:
			q.Set("is_offer", "true")
		case TripOffer:
			q.Set("is_demand", "true")
		}
	}

	if c.TripID > 0 {
		sub = fmt.Sprintf("%d/", c.TripID)
		q.Set("trip_id", strconv.Itoa(c.TripID))
	}

	return sub, q, nil
}

// SearchResult is the decoded search envelope. Offers and Demands are
// empty slices when the server answers null for them.
type SearchResult struct {
	Trip    *Trip
	Offers  []*Trip
	Demands []*Trip
}

// Search runs the matching search. When TripID is set the search is scoped
// to that trip's route: the id becomes a sub-path and stays in the query.
func (s *Service) Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error) {
	sub, q, err := criteria.query()
	if err != nil {
		return nil, err
	}

	res, err := s.resource("search").Get(ctx, sub, q)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Trip    json.RawMessage `json:"trip"`
		Offers  json.RawMessage `json:"trip_offers"`
		Demands json.RawMessage `json:"trip_demands"`
	}
	if err := mapping.Decode(res.Body, &envelope); err != nil {
		return nil, err
	}

	trip, err := mapping.Build[Trip](envelope.Trip)
	if err != nil {
		return nil, err
	}
	offers, err := mapping.BuildList[Trip](envelope.Offers)
	if err != nil {
		return nil, err
	}
	demands, err := mapping.BuildList[Trip](envelope.Demands)
	if err != nil {
		return nil, err
	}

	return &SearchResult{Trip: trip, Offers: offers, Demands: demands}, nil
}

// Cities looks cities up by name; spaces become dashes in the path.
func (s *Service) Cities(ctx context.Context, value string) ([]*City, error) {
	sub := strings.ReplaceAll(value, " ", "-") + "/"
	res, err := s.resource("city").Get(ctx, sub, nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.BuildList[City](raw)
}

// CarTypes returns the vehicle categories known to the server.
func (s *Service) CarTypes(ctx context.Context) ([]*CarType, error) {
	res, err := s.resource("cartypes").Get(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	raw, err := mapping.Unpack(res.Body)
	if err != nil {
		return nil, err
	}
	return mapping.BuildList[CarType](raw)
}
