package response

import (
	"airport-api/internal/data/entity"
	"airport-api/internal/domain"
)

type AirportListResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	IATACode string  `json:"iata_code"`
	Image    *string `json:"image"`
}

type AirportDetailResponse struct {
	AirportListResponse
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AirportResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	IATACode  string  `json:"iata_code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var airportViews = views[*entity.Airport]{
	ViewList:     func(a *entity.Airport) any { return airportList(a) },
	ViewRetrieve: func(a *entity.Airport) any { return airportDetail(a) },
	ViewCreate:   func(a *entity.Airport) any { return airportWrite(a) },
	ViewUpdate:   func(a *entity.Airport) any { return airportWrite(a) },
	ViewUpload:   func(a *entity.Airport) any { return ImageResponse{ID: a.ID.String(), Image: a.Image} },
}

func Airport(view View, a *entity.Airport) any { return airportViews.render(view, a) }

func Airports(view View, items []*entity.Airport) []any { return airportViews.renderAll(view, items) }

func airportList(a *entity.Airport) AirportListResponse {
	return AirportListResponse{
		ID:       a.ID.String(),
		Name:     a.Name,
		City:     a.City,
		Country:  a.Country,
		IATACode: a.IATACode,
		Image:    a.Image,
	}
}

func airportDetail(a *entity.Airport) AirportDetailResponse {
	return AirportDetailResponse{
		AirportListResponse: airportList(a),
		Latitude:            a.Latitude,
		Longitude:           a.Longitude,
	}
}

func airportWrite(a *entity.Airport) AirportResponse {
	return AirportResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		City:      a.City,
		Country:   a.Country,
		IATACode:  a.IATACode,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

type RouteResponse struct {
	ID            string `json:"id"`
	SourceID      string `json:"source_id"`
	DestinationID string `json:"destination_id"`
}

type RouteListResponse struct {
	ID          string              `json:"id"`
	Source      AirportListResponse `json:"source"`
	Destination AirportListResponse `json:"destination"`
}

type RouteDetailResponse struct {
	ID          string                `json:"id"`
	Source      AirportDetailResponse `json:"source"`
	Destination AirportDetailResponse `json:"destination"`
	Distance    string                `json:"distance"`
}

var routeViews = views[*entity.Route]{
	ViewList:     func(r *entity.Route) any { return routeList(r) },
	ViewRetrieve: func(r *entity.Route) any { return routeDetail(r) },
	ViewCreate:   func(r *entity.Route) any { return routeWrite(r) },
	ViewUpdate:   func(r *entity.Route) any { return routeWrite(r) },
}

func Route(view View, r *entity.Route) any { return routeViews.render(view, r) }

func Routes(view View, items []*entity.Route) []any { return routeViews.renderAll(view, items) }

func routeWrite(r *entity.Route) RouteResponse {
	return RouteResponse{
		ID:            r.ID.String(),
		SourceID:      r.SourceID.String(),
		DestinationID: r.DestinationID.String(),
	}
}

func routeList(r *entity.Route) RouteListResponse {
	resp := RouteListResponse{ID: r.ID.String()}
	if r.Source != nil {
		resp.Source = airportList(r.Source)
	}
	if r.Destination != nil {
		resp.Destination = airportList(r.Destination)
	}
	return resp
}

func routeDetail(r *entity.Route) RouteDetailResponse {
	resp := RouteDetailResponse{
		ID:       r.ID.String(),
		Distance: domain.FormatDistance(r.DistanceKM()),
	}
	if r.Source != nil {
		resp.Source = airportDetail(r.Source)
	}
	if r.Destination != nil {
		resp.Destination = airportDetail(r.Destination)
	}
	return resp
}
