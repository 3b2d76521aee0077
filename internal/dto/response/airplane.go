package response

import "airport-api/internal/data/entity"

type AirplaneTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func AirplaneTypeToResponse(t *entity.AirplaneType) AirplaneTypeResponse {
	return AirplaneTypeResponse{ID: t.ID.String(), Name: string(t.Name)}
}

type AirplaneResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID string `json:"airplane_type_id"`
}

type AirplaneListResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Rows         int     `json:"rows"`
	SeatsInRow   int     `json:"seats_in_row"`
	AirplaneType string  `json:"airplane_type"`
	Image        *string `json:"image"`
}

type AirplaneDetailResponse struct {
	AirplaneListResponse
	Capacity int `json:"capacity"`
}

var airplaneViews = views[*entity.Airplane]{
	ViewList:     func(a *entity.Airplane) any { return airplaneList(a) },
	ViewRetrieve: func(a *entity.Airplane) any { return airplaneDetail(a) },
	ViewCreate:   func(a *entity.Airplane) any { return airplaneWrite(a) },
	ViewUpdate:   func(a *entity.Airplane) any { return airplaneWrite(a) },
	ViewUpload:   func(a *entity.Airplane) any { return ImageResponse{ID: a.ID.String(), Image: a.Image} },
}

func Airplane(view View, a *entity.Airplane) any { return airplaneViews.render(view, a) }

func Airplanes(view View, items []*entity.Airplane) []any { return airplaneViews.renderAll(view, items) }

func airplaneWrite(a *entity.Airplane) AirplaneResponse {
	return AirplaneResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		Rows:           a.Rows,
		SeatsInRow:     a.SeatsInRow,
		AirplaneTypeID: a.AirplaneTypeID.String(),
	}
}

func airplaneList(a *entity.Airplane) AirplaneListResponse {
	return AirplaneListResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		AirplaneType: string(a.AirplaneTypeName),
		Image:        a.Image,
	}
}

func airplaneDetail(a *entity.Airplane) AirplaneDetailResponse {
	return AirplaneDetailResponse{
		AirplaneListResponse: airplaneList(a),
		Capacity:             a.Capacity(),
	}
}
