package usecase

import (
	"context"
	"errors"
	"testing"

	"airport-api/internal/data/entity"
	"airport-api/internal/domain"
	"airport-api/internal/dto/request"

	"github.com/google/uuid"
)

func newAirplaneFixture(t *testing.T, sold bool) (*memStore, AirplaneService, *entity.Airplane, uuid.UUID) {
	t.Helper()
	store := newMemStore()
	plane := &entity.Airplane{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		Name:           "Boeing 737",
		Rows:           10,
		SeatsInRow:     5,
		AirplaneTypeID: uuid.New(),
	}
	store.airplanes[plane.ID] = plane
	flight := store.addFlight(plane.Geometry())
	store.flightsOf[plane.ID] = []uuid.UUID{flight}

	if sold {
		orders := NewOrderService(store.repository(), testInfra(newRecordingCache(), &recordingPublisher{}), nopLog)
		if _, err := orders.CreateOrder(context.Background(), uuid.New(), []TicketRequest{{flight, 10, 5}}); err != nil {
			t.Fatalf("seed ticket: %v", err)
		}
	}

	svc := NewAirplaneService(store.repository(), testInfra(newRecordingCache(), &recordingPublisher{}), nopLog)
	return store, svc, plane, flight
}

func airplaneRequest(plane *entity.Airplane, name string, rows, seats int) *request.AirplaneRequest {
	return &request.AirplaneRequest{
		Name:           name,
		Rows:           rows,
		SeatsInRow:     seats,
		AirplaneTypeID: plane.AirplaneTypeID.String(),
	}
}

func TestAirplaneUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sold    bool
		rows    int
		seats   int
		wantErr error
	}{
		{name: "grid change without tickets", rows: 8, seats: 4},
		{name: "rename with tickets", sold: true, rows: 10, seats: 5},
		{name: "shrink with tickets", sold: true, rows: 9, seats: 5, wantErr: domain.ErrConflict},
		{name: "grow with tickets", sold: true, rows: 10, seats: 6, wantErr: domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store, svc, plane, flight := newAirplaneFixture(t, tt.sold)

			updated, err := svc.Update(context.Background(), plane.ID, airplaneRequest(plane, "Renamed", tt.rows, tt.seats))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if got := store.airplanes[plane.ID]; got.Rows != 10 || got.SeatsInRow != 5 || got.Name != "Boeing 737" {
					t.Fatalf("expected airplane unchanged, got %+v", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if updated.Name != "Renamed" || updated.Rows != tt.rows || updated.SeatsInRow != tt.seats || !updated.UpdatedAt.Equal(testNow) {
				t.Fatalf("unexpected airplane %+v", updated)
			}
			if g := store.geometries[flight]; g.Rows != tt.rows || g.SeatsInRow != tt.seats {
				t.Fatalf("expected flight grid to follow airplane, got %+v", g)
			}
		})
	}
}

func TestAirplaneUpdate_Invalid(t *testing.T) {
	t.Parallel()
	_, svc, plane, _ := newAirplaneFixture(t, false)
	ctx := context.Background()

	_, err := svc.Update(ctx, plane.ID, airplaneRequest(plane, "", 0, 5))
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "rows"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected error on %s, got %v", field, verr.Fields)
		}
	}

	_, err = svc.Update(ctx, uuid.New(), airplaneRequest(plane, "Ghost", 1, 1))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
