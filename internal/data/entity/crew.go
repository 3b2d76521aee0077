package entity

import "fmt"

type CrewPosition string

const (
	PositionCaptain                CrewPosition = "CPT"
	PositionFirstOfficer           CrewPosition = "FO"
	PositionSecondOfficer          CrewPosition = "SO"
	PositionThirdOfficer           CrewPosition = "TO"
	PositionAirborneSensorOperator CrewPosition = "ASO"
	PositionPurser                 CrewPosition = "PRS"
	PositionFlightAttendant        CrewPosition = "FA"
	PositionFlightMedic            CrewPosition = "FM"
	PositionLoadmaster             CrewPosition = "LM"
)

type Crew struct {
	Base
	FirstName string       `db:"first_name"`
	LastName  string       `db:"last_name"`
	Position  CrewPosition `db:"position"`
	Image     *string      `db:"image"`
}

func (c *Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Label is the crew member as shown on flight lists, "Jane Doe (CPT)".
func (c *Crew) Label() string {
	return fmt.Sprintf("%s (%s)", c.FullName(), c.Position)
}
