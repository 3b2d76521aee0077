package entity

import (
	"fmt"

	"airport-api/internal/domain"

	"github.com/google/uuid"
)

type Airport struct {
	Base
	Name      string  `db:"name"`
	City      string  `db:"city"`
	Country   string  `db:"country"`
	IATACode  string  `db:"iata_code"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	Image     *string `db:"image"`
}

func (a *Airport) Label() string {
	return fmt.Sprintf("%s %s", a.IATACode, a.Name)
}

type Route struct {
	Base
	SourceID      uuid.UUID `db:"source_id"`
	DestinationID uuid.UUID `db:"destination_id"`

	Source      *Airport
	Destination *Airport
}

// Label renders "SRC_IATA SRC_NAME - DST_IATA DST_NAME".
func (r *Route) Label() string {
	if r.Source == nil || r.Destination == nil {
		return ""
	}
	return fmt.Sprintf("%s - %s", r.Source.Label(), r.Destination.Label())
}

// DistanceKM is zero when the airports are not loaded.
func (r *Route) DistanceKM() float64 {
	if r.Source == nil || r.Destination == nil {
		return 0
	}
	return domain.DistanceKM(r.Source.Latitude, r.Source.Longitude, r.Destination.Latitude, r.Destination.Longitude)
}
