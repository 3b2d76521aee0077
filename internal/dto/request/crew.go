package request

type CrewRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Position  string `json:"position" validate:"required,oneof=CPT FO SO TO ASO PRS FA FM LM"`
}
