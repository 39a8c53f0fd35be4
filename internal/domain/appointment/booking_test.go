package appointment

import "testing"

func validRequest() BookingRequest {
	return BookingRequest{
		ClientName: "Maria Silva",
		Phone:      "(11) 98765-4321",
		ServiceID:  1,
		Date:       "2026-01-28",
		Time:       "10:00",
	}
}

func TestFieldErrors_Valid(t *testing.T) {
	req := validRequest()
	if fields := FieldErrors(req); len(fields) != 0 {
		t.Fatalf("expected no errors, got %v", fields)
	}
}

func TestFieldErrors_OneMessagePerField(t *testing.T) {
	req := BookingRequest{
		ClientName: " M ",
		Phone:      "abc",
		Date:       "28/01/2026",
		Time:       "10h",
	}
	req.Normalize()

	fields := FieldErrors(req)

	for _, f := range []string{"client_name", "phone", "service_id", "date", "time"} {
		if fields[f] == "" {
			t.Fatalf("expected message for %s, got %v", f, fields)
		}
	}
	if len(fields) != 5 {
		t.Fatalf("expected 5 invalid fields, got %v", fields)
	}
	if fields["date"] != "must be a date in YYYY-MM-DD format" {
		t.Fatalf("unexpected date message %q", fields["date"])
	}
	if fields["time"] != "must be a time in HH:MM format" {
		t.Fatalf("unexpected time message %q", fields["time"])
	}
}

func TestFieldErrors_PhoneFormat(t *testing.T) {
	req := validRequest()
	req.Phone = "11-9876-ABCD"

	fields := FieldErrors(req)
	if fields["phone"] != "must be a valid phone number" {
		t.Fatalf("unexpected phone message %v", fields)
	}
}

func TestFieldErrors_Reschedule(t *testing.T) {
	fields := FieldErrors(RescheduleRequest{Date: "2026-02-30", Time: "25:00"})
	if fields["date"] == "" || fields["time"] == "" {
		t.Fatalf("expected date and time errors, got %v", fields)
	}
}
