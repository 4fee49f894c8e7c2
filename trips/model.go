// Package trips exposes the Trips façade of the BisonVert API: listing,
// CRUD and the complementary offer/demand search.
package trips

import (
	"encoding/json"
	"strings"

	"github.com/bisonvert/bv.libclient/mapping"
	"github.com/bisonvert/bv.libclient/users"
)

// TripType tells whether a trip is a driver's offer, a rider's demand,
// or both at once.
type TripType int

const (
	TripOffer  TripType = 0
	TripDemand TripType = 1
	TripBoth   TripType = 2

	// TripUnknown marks a trip carrying neither role.
	TripUnknown TripType = -1
)

func (tt TripType) String() string {
	switch tt {
	case TripOffer:
		return "Offer"
	case TripDemand:
		return "Demand"
	case TripBoth:
		return "Both"
	}
	return ""
}

// Offer is the driver-side half of a trip.
type Offer struct {
	ID     int             `json:"id"`
	Steps  []string        `json:"steps"`
	Radius float64         `json:"radius"`
	Route  json.RawMessage `json:"route"`
}

// Checkpoints aliases the offer's intermediate steps.
func (o *Offer) Checkpoints() []string { return o.Steps }

// Demand is the rider-side half of a trip.
type Demand struct {
	ID     int     `json:"id"`
	Radius float64 `json:"radius"`
}

// Trip is a carpooling announcement, nested with its owner and its
// offer/demand halves.
type Trip struct {
	ID               int               `json:"id"`
	User             *users.User       `json:"user"`
	Offer            *Offer            `json:"offer"`
	Demand           *Demand           `json:"demand"`
	DepartureCity    string            `json:"departure_city"`
	ArrivalCity      string            `json:"arrival_city"`
	Date             mapping.Date      `json:"date"`
	Time             mapping.TimeOfDay `json:"time"`
	Dows             []int             `json:"dows"`
	Regular          mapping.LooseBool `json:"regular"`
	Alert            mapping.LooseBool `json:"alert"`
	Comment          string            `json:"comment"`
	CreationDate     mapping.DateTime  `json:"creation_date"`
	ModificationDate mapping.DateTime  `json:"modification_date"`
}

// Type derives the trip's role from the presence of its halves.
func (t *Trip) Type() TripType {
	switch {
	case t.Offer != nil && t.Demand != nil:
		return TripBoth
	case t.Offer != nil:
		return TripOffer
	case t.Demand != nil:
		return TripDemand
	}
	return TripUnknown
}

var dowNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DowsLabel renders the recurring days as "Mon-Wed-Fri".
func (t *Trip) DowsLabel() string {
	names := make([]string, 0, len(t.Dows))
	for _, d := range t.Dows {
		if d >= 0 && d < len(dowNames) {
			names = append(names, dowNames[d])
		}
	}
	return strings.Join(names, "-")
}

func (t *Trip) String() string {
	return t.DepartureCity + " - " + t.ArrivalCity
}

// CarType is one of the server-defined vehicle categories.
type CarType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (ct CarType) String() string { return ct.Name }

// City is a resolved city entry from the cities lookup.
type City struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Zipcode string `json:"zipcode"`
}
