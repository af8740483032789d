package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidTransition is returned when an appointment is asked to leave a
// terminal state or to enter one it cannot reach.
var ErrInvalidTransition = errors.New("invalid status transition")

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	gorm.Model
	PatientID      uint              `json:"patient_id"`
	Patient        User              `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DoctorID       uint              `json:"doctor_id"`
	Doctor         User              `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	ScheduledTime  time.Time         `json:"scheduled_time"`
	Status         AppointmentStatus `json:"status"`
	PrescriptionQR *string           `json:"prescription_qr,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusBooked
	}
	return nil
}

// UpdateStatus moves the appointment through its state machine and saves it.
// Booked appointments may be cancelled or completed; cancelled and completed
// are terminal. The guard is evaluated against the stored status, not the
// caller's copy, so a stale load cannot re-open a terminal appointment.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	var current Appointment
	if err := tx.First(&current, a.ID).Error; err != nil {
		return err
	}

	switch current.Status {
	case StatusBooked:
		if newStatus != StatusCancelled && newStatus != StatusCompleted {
			return fmt.Errorf("%w: booked to %s", ErrInvalidTransition, newStatus)
		}
	case StatusCancelled, StatusCompleted:
		return fmt.Errorf("%w: no transitions allowed from %s", ErrInvalidTransition, current.Status)
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, current.Status)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}
