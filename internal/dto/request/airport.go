package request

type AirportRequest struct {
	Name      string   `json:"name" validate:"required,max=255"`
	City      string   `json:"city" validate:"required,max=255"`
	Country   string   `json:"country" validate:"required,max=255"`
	IATACode  string   `json:"iata_code" validate:"required,len=3,alpha"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

type RouteRequest struct {
	SourceID      string `json:"source_id" validate:"required,uuid"`
	DestinationID string `json:"destination_id" validate:"required,uuid,nefield=SourceID"`
}
