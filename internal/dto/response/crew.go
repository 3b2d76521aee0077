package response

import "airport-api/internal/data/entity"

type CrewResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
}

type CrewDetailResponse struct {
	CrewResponse
	FullName string  `json:"full_name"`
	Image    *string `json:"image"`
}

var crewViews = views[*entity.Crew]{
	ViewList:     func(c *entity.Crew) any { return crewDetail(c) },
	ViewRetrieve: func(c *entity.Crew) any { return crewDetail(c) },
	ViewCreate:   func(c *entity.Crew) any { return crewWrite(c) },
	ViewUpdate:   func(c *entity.Crew) any { return crewWrite(c) },
	ViewUpload:   func(c *entity.Crew) any { return ImageResponse{ID: c.ID.String(), Image: c.Image} },
}

func Crew(view View, c *entity.Crew) any { return crewViews.render(view, c) }

func Crews(view View, items []*entity.Crew) []any { return crewViews.renderAll(view, items) }

func crewWrite(c *entity.Crew) CrewResponse {
	return CrewResponse{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Position:  string(c.Position),
	}
}

func crewDetail(c *entity.Crew) CrewDetailResponse {
	return CrewDetailResponse{
		CrewResponse: crewWrite(c),
		FullName:     c.FullName(),
		Image:        c.Image,
	}
}
