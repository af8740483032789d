package models

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// a fresh :memory: database per connection would lose state
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&User{}, &DoctorProfile{}, &Appointment{}, &QueueEntry{}, &Bed{}, &Medicine{}))
	return gdb
}

func createAppointment(t *testing.T, gdb *gorm.DB, doctorID uint) *Appointment {
	t.Helper()

	appt := Appointment{
		PatientID:     1,
		DoctorID:      doctorID,
		ScheduledTime: time.Now().Add(time.Hour),
	}
	require.NoError(t, gdb.Create(&appt).Error)
	return &appt
}

func positions(t *testing.T, gdb *gorm.DB, doctorID uint) []int {
	t.Helper()

	entries, err := GetQueueForDoctor(gdb, doctorID)
	require.NoError(t, err)
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.QueuePosition)
	}
	return out
}

func TestEnqueueAssignsTailPositions(t *testing.T) {
	gdb := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		appt := createAppointment(t, gdb, 10)
		entry, err := EnqueueAppointment(gdb, appt.ID, 10)
		require.NoError(t, err)
		require.Equal(t, want, entry.QueuePosition)
	}

	require.Equal(t, []int{1, 2, 3}, positions(t, gdb, 10))
}

func TestEnqueueIsPerDoctor(t *testing.T) {
	gdb := setupTestDB(t)

	a1 := createAppointment(t, gdb, 10)
	a2 := createAppointment(t, gdb, 20)

	e1, err := EnqueueAppointment(gdb, a1.ID, 10)
	require.NoError(t, err)
	e2, err := EnqueueAppointment(gdb, a2.ID, 20)
	require.NoError(t, err)

	// independent queues both start at 1
	require.Equal(t, 1, e1.QueuePosition)
	require.Equal(t, 1, e2.QueuePosition)
}

func TestRemoveMiddleEntryClosesGap(t *testing.T) {
	gdb := setupTestDB(t)

	appts := make([]*Appointment, 3)
	for i := range appts {
		appts[i] = createAppointment(t, gdb, 10)
		_, err := EnqueueAppointment(gdb, appts[i].ID, 10)
		require.NoError(t, err)
	}

	// remove the entry at position 2
	require.NoError(t, RemoveFromQueue(gdb, appts[1].ID))

	entries, err := GetQueueForDoctor(gdb, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, appts[0].ID, entries[0].AppointmentID)
	require.Equal(t, 1, entries[0].QueuePosition)
	require.Equal(t, appts[2].ID, entries[1].AppointmentID)
	require.Equal(t, 2, entries[1].QueuePosition)
}

func TestRemoveDoesNotTouchOtherDoctors(t *testing.T) {
	gdb := setupTestDB(t)

	mine := createAppointment(t, gdb, 10)
	_, err := EnqueueAppointment(gdb, mine.ID, 10)
	require.NoError(t, err)

	other := createAppointment(t, gdb, 20)
	_, err = EnqueueAppointment(gdb, other.ID, 20)
	require.NoError(t, err)

	require.NoError(t, RemoveFromQueue(gdb, mine.ID))

	require.Empty(t, positions(t, gdb, 10))
	require.Equal(t, []int{1}, positions(t, gdb, 20))
}

func TestRemoveUnqueuedAppointmentIsNoop(t *testing.T) {
	gdb := setupTestDB(t)
	require.NoError(t, RemoveFromQueue(gdb, 999))
}

func TestPositionsStayContiguousUnderChurn(t *testing.T) {
	gdb := setupTestDB(t)

	var appts []*Appointment
	for i := 0; i < 5; i++ {
		a := createAppointment(t, gdb, 10)
		_, err := EnqueueAppointment(gdb, a.ID, 10)
		require.NoError(t, err)
		appts = append(appts, a)
	}

	// drop head, middle and tail in turn; the live set must read 1..N after
	// every removal
	for _, idx := range []int{0, 2, 4} {
		require.NoError(t, RemoveFromQueue(gdb, appts[idx].ID))

		pos := positions(t, gdb, 10)
		for i, p := range pos {
			require.Equal(t, i+1, p, "positions must be contiguous from 1")
		}
	}

	require.Len(t, positions(t, gdb, 10), 2)
}

func TestLockDoctorQueueSerializes(t *testing.T) {
	unlock := LockDoctorQueue(10)

	acquired := make(chan struct{})
	go func() {
		u := LockDoctorQueue(10)
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second caller acquired the lock while it was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second caller never acquired the lock after release")
	}
}
