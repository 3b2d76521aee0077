package request

type AirplaneTypeRequest struct {
	Name string `json:"name" validate:"required,oneof=NB WB RL CR"`
}

type AirplaneRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Rows           int    `json:"rows" validate:"required,min=1,max=1000"`
	SeatsInRow     int    `json:"seats_in_row" validate:"required,min=1,max=100"`
	AirplaneTypeID string `json:"airplane_type_id" validate:"required,uuid"`
}
