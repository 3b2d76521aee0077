package entity

import (
	"airport-api/internal/domain"

	"github.com/google/uuid"
)

type AirplaneTypeName string

const (
	AirplaneTypeNarrowBody AirplaneTypeName = "NB"
	AirplaneTypeWideBody   AirplaneTypeName = "WB"
	AirplaneTypeRegional   AirplaneTypeName = "RL"
	AirplaneTypeCommuter   AirplaneTypeName = "CR"
)

type AirplaneType struct {
	Base
	Name AirplaneTypeName `db:"name"`
}

type Airplane struct {
	Base
	Name           string    `db:"name"`
	Rows           int       `db:"rows"`
	SeatsInRow     int       `db:"seats_in_row"`
	AirplaneTypeID uuid.UUID `db:"airplane_type_id"`
	Image          *string   `db:"image"`

	// populated by list/detail queries
	AirplaneTypeName AirplaneTypeName `db:"airplane_type_name"`
}

func (a *Airplane) Geometry() domain.Geometry {
	return domain.Geometry{Rows: a.Rows, SeatsInRow: a.SeatsInRow}
}

func (a *Airplane) Capacity() int {
	return a.Geometry().Capacity()
}
