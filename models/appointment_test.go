package models

import "testing"

func TestAppointmentCanTransition(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCanceled, StatusConfirmed, false},
		{StatusCanceled, StatusCompleted, false},
	}

	for _, tt := range tests {
		a := Appointment{Status: tt.from}
		if got := a.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
