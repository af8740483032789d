package models

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

// QueueEntry is one slot in a doctor's call order. Live entries for a doctor
// always occupy positions 1..N with no gaps: booking appends at MAX+1,
// removal shifts every later entry down by one.
type QueueEntry struct {
	gorm.Model
	AppointmentID uint        `json:"appointment_id" gorm:"unique"`
	Appointment   Appointment `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
	DoctorID      uint        `json:"doctor_id"`
	QueuePosition int         `json:"queue_position"`
}

func (QueueEntry) TableName() string {
	return "smart_queue"
}

// doctorQueueLocks serializes queue mutations per doctor. Concurrent
// book/cancel/complete calls for the same doctor would otherwise interleave
// their read-shift-write sequences and corrupt the position sequence.
var doctorQueueLocks sync.Map

// LockDoctorQueue takes the per-doctor queue lock and returns the unlock func.
func LockDoctorQueue(doctorID uint) func() {
	v, _ := doctorQueueLocks.LoadOrStore(doctorID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// EnqueueAppointment appends the appointment at the tail of the doctor's
// queue. Positions are monotonically increasing: a freed position is never
// reused mid-sequence. Caller must hold the doctor's queue lock.
func EnqueueAppointment(tx *gorm.DB, appointmentID uint, doctorID uint) (*QueueEntry, error) {
	var maxPos int
	err := tx.Model(&QueueEntry{}).
		Where("doctor_id = ?", doctorID).
		Select("COALESCE(MAX(queue_position), 0)").
		Scan(&maxPos).Error
	if err != nil {
		return nil, err
	}

	entry := QueueEntry{
		AppointmentID: appointmentID,
		DoctorID:      doctorID,
		QueuePosition: maxPos + 1,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveFromQueue deletes the appointment's queue entry (if any) and closes
// the gap: every entry for the same doctor with a higher position moves down
// by one, keeping positions a contiguous 1..N. Caller must hold the doctor's
// queue lock.
func RemoveFromQueue(tx *gorm.DB, appointmentID uint) error {
	var entry QueueEntry
	if err := tx.Where("appointment_id = ?", appointmentID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// nothing queued for this appointment
			return nil
		}
		return err
	}

	if err := tx.Unscoped().Delete(&entry).Error; err != nil {
		return err
	}

	return tx.Model(&QueueEntry{}).
		Where("doctor_id = ? AND queue_position > ?", entry.DoctorID, entry.QueuePosition).
		Update("queue_position", gorm.Expr("queue_position - 1")).Error
}

// GetQueueForDoctor returns the doctor's live queue in call order.
func GetQueueForDoctor(tx *gorm.DB, doctorID uint) ([]QueueEntry, error) {
	var entries []QueueEntry
	err := tx.Where("doctor_id = ?", doctorID).
		Order("queue_position asc").
		Find(&entries).Error
	return entries, err
}
