package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAppointmentDefaultsToBooked(t *testing.T) {
	gdb := setupTestDB(t)

	appt := Appointment{PatientID: 1, DoctorID: 2, ScheduledTime: time.Now()}
	require.NoError(t, gdb.Create(&appt).Error)
	require.Equal(t, StatusBooked, appt.Status)
}

func TestBookedAppointmentCanBeCancelled(t *testing.T) {
	gdb := setupTestDB(t)
	appt := createAppointment(t, gdb, 2)

	require.NoError(t, appt.UpdateStatus(gdb, StatusCancelled))

	var stored Appointment
	require.NoError(t, gdb.First(&stored, appt.ID).Error)
	require.Equal(t, StatusCancelled, stored.Status)
}

func TestBookedAppointmentCanBeCompleted(t *testing.T) {
	gdb := setupTestDB(t)
	appt := createAppointment(t, gdb, 2)

	require.NoError(t, appt.UpdateStatus(gdb, StatusCompleted))
	require.Equal(t, StatusCompleted, appt.Status)
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	gdb := setupTestDB(t)

	for _, terminal := range []AppointmentStatus{StatusCancelled, StatusCompleted} {
		appt := createAppointment(t, gdb, 2)
		require.NoError(t, appt.UpdateStatus(gdb, terminal))

		for _, next := range []AppointmentStatus{StatusBooked, StatusCancelled, StatusCompleted} {
			err := appt.UpdateStatus(gdb, next)
			require.ErrorIs(t, err, ErrInvalidTransition)
		}

		// status must be unchanged in the store
		var stored Appointment
		require.NoError(t, gdb.First(&stored, appt.ID).Error)
		require.Equal(t, terminal, stored.Status)
	}
}

func TestStaleLoadCannotReopenTerminalAppointment(t *testing.T) {
	gdb := setupTestDB(t)
	appt := createAppointment(t, gdb, 2)

	// two callers that both saw the appointment while it was still booked
	var first, second Appointment
	require.NoError(t, gdb.First(&first, appt.ID).Error)
	require.NoError(t, gdb.First(&second, appt.ID).Error)

	qr := "data:image/png;base64,stub"
	first.PrescriptionQR = &qr
	require.NoError(t, first.UpdateStatus(gdb, StatusCompleted))

	// the second caller's copy is stale; the guard must read the store
	require.ErrorIs(t, second.UpdateStatus(gdb, StatusCancelled), ErrInvalidTransition)

	var stored Appointment
	require.NoError(t, gdb.First(&stored, appt.ID).Error)
	require.Equal(t, StatusCompleted, stored.Status)
	require.NotNil(t, stored.PrescriptionQR, "losing transition must not clobber the prescription")
}

func TestUnknownStoredStatusRejectsTransitions(t *testing.T) {
	gdb := setupTestDB(t)
	appt := createAppointment(t, gdb, 2)

	require.NoError(t, gdb.Model(&Appointment{}).
		Where("id = ?", appt.ID).
		Update("status", "archived").Error)

	require.ErrorIs(t, appt.UpdateStatus(gdb, StatusCancelled), ErrInvalidTransition)
}

func TestBookedRejectsReenteringBooked(t *testing.T) {
	gdb := setupTestDB(t)
	appt := createAppointment(t, gdb, 2)

	require.ErrorIs(t, appt.UpdateStatus(gdb, StatusBooked), ErrInvalidTransition)
}
