package utils

import "testing"

type sampleTicket struct {
	Row  int `json:"row" validate:"min=1"`
	Seat int `json:"seat" validate:"min=1"`
}

type sampleOrder struct {
	Email   string         `json:"email" validate:"required,email"`
	Tickets []sampleTicket `json:"tickets" validate:"required,min=1,dive"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	if errs := ValidateStruct(sampleOrder{Email: "a@b.co", Tickets: []sampleTicket{{Row: 1, Seat: 1}}}); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs := ValidateStruct(sampleOrder{Email: "nope", Tickets: []sampleTicket{{Row: 0, Seat: 2}}})
	if errs["email"] != "Invalid email format" {
		t.Fatalf("expected email error, got %v", errs)
	}
	if _, ok := errs["tickets[0].row"]; !ok {
		t.Fatalf("expected nested row error, got %v", errs)
	}
	if _, ok := errs["tickets[0].seat"]; ok {
		t.Fatalf("did not expect seat error, got %v", errs)
	}
}

type sampleFlight struct {
	SourceID      string `json:"source_id" validate:"required"`
	DestinationID string `json:"destination_id" validate:"required,nefield=SourceID"`
	Departure     int    `json:"departure_time"`
	Arrival       int    `json:"arrival_time" validate:"gtfield=Departure"`
}

func TestValidateStructFieldComparisons(t *testing.T) {
	t.Parallel()

	errs := ValidateStruct(sampleFlight{SourceID: "a", DestinationID: "a", Departure: 5, Arrival: 5})
	if got, want := errs["destination_id"], "Must differ from source_id"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got, want := errs["arrival_time"], "Must be later than departure"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := splitList(" http://a.test , ,http://b.test")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("unexpected split result %v", got)
	}
}
