package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/meinhoongagan/hospital-app/db"
	"github.com/meinhoongagan/hospital-app/models"
	"github.com/meinhoongagan/hospital-app/redis"
	"github.com/meinhoongagan/hospital-app/utils"
)

// BookAppointment creates a booked appointment and appends it to the
// doctor's queue in a single transaction. The queue mutation is serialized
// per doctor so concurrent bookings cannot race the MAX+1 read.
func BookAppointment(c *fiber.Ctx) error {
	type AppointmentInput struct {
		PatientID     uint      `json:"patient_id"`
		DoctorID      uint      `json:"doctor_id"`
		ScheduledTime time.Time `json:"scheduled_time"`
	}

	input := new(AppointmentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.PatientID == 0 || input.DoctorID == 0 || input.ScheduledTime.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "patient_id, doctor_id and scheduled_time are required",
		})
	}

	// The patient slot takes a patient, the doctor slot an approved doctor
	var patient models.User
	if db.DB.Where("id = ? AND role = ?", input.PatientID, models.RolePatient).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}
	var doctor models.User
	if db.DB.Where("id = ? AND role = ? AND is_approved = ?", input.DoctorID, models.RoleDoctor, true).First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	appointment := models.Appointment{
		PatientID:     input.PatientID,
		DoctorID:      input.DoctorID,
		ScheduledTime: input.ScheduledTime,
	}

	unlock := models.LockDoctorQueue(input.DoctorID)
	defer unlock()

	var entry *models.QueueEntry
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		var err error
		entry, err = models.EnqueueAppointment(tx, appointment.ID, appointment.DoctorID)
		return err
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateQueue(appointment.DoctorID)

	// Best-effort confirmation; failure never affects the booking
	if patient.Email != nil {
		utils.SendEmailAsync(*patient.Email, "Appointment Confirmed",
			fmt.Sprintf("<p>Dear %s,</p><p>Your appointment with Dr. %s is booked.</p><p>Queue number: %d</p>",
				patient.FullName, doctor.FullName, entry.QueuePosition))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"appointment":    appointment,
		"queue_position": entry.QueuePosition,
	})
}

// GetAppointment returns an appointment by ID
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Patient").Preload("Doctor").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	appointment.Patient.Password = ""
	appointment.Doctor.Password = ""
	return c.JSON(appointment)
}

// CancelAppointment cancels a booked appointment, removes its queue entry
// and closes the position gap for the doctor's remaining queue.
func CancelAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	unlock := models.LockDoctorQueue(appointment.DoctorID)
	defer unlock()

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := appointment.UpdateStatus(tx, models.StatusCancelled); err != nil {
			return err
		}
		return models.RemoveFromQueue(tx, appointment.ID)
	})
	if err != nil {
		if isTransitionError(err) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Appointment is no longer active",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateQueue(appointment.DoctorID)
	notifyPatient(appointment.PatientID, "Appointment Cancelled", "<p>Your appointment was cancelled.</p>")

	return c.JSON(appointment)
}

// CompleteAppointment completes a booked appointment, stores an optional
// prescription QR artifact and performs the same queue removal as cancel.
func CompleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	type CompleteInput struct {
		PrescriptionText string `json:"prescription_text"`
	}
	input := new(CompleteInput)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	// Render the prescription QR up front so a bad encode fails the request
	// before any state changes
	if input.PrescriptionText != "" {
		qr, err := utils.MakeQRDataURI(input.PrescriptionText)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to generate prescription QR",
				Error:   err.Error(),
			})
		}
		appointment.PrescriptionQR = &qr
	}

	unlock := models.LockDoctorQueue(appointment.DoctorID)
	defer unlock()

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := appointment.UpdateStatus(tx, models.StatusCompleted); err != nil {
			return err
		}
		return models.RemoveFromQueue(tx, appointment.ID)
	})
	if err != nil {
		if isTransitionError(err) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Appointment is no longer active",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to complete appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateQueue(appointment.DoctorID)

	if appointment.PrescriptionQR != nil {
		// Move the artifact to Cloudinary post-commit when configured; the
		// inline data URI already stored keeps the record usable either way
		if utils.CloudinaryConfigured() {
			go uploadPrescriptionQR(appointment.ID, *appointment.PrescriptionQR)
		}
		notifyPatient(appointment.PatientID, "Prescription Ready", "<p>Your prescription QR is available.</p>")
	}

	return c.JSON(appointment)
}

// GetQueueForDoctor returns the doctor's live queue in call order
func GetQueueForDoctor(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("doctorId")
	if err != nil || doctorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor ID",
		})
	}

	if entries, ok := redis.GetCachedQueue(uint(doctorID)); ok {
		return c.JSON(entries)
	}

	entries, err := models.GetQueueForDoctor(db.DB, uint(doctorID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch queue",
			Error:   err.Error(),
		})
	}

	redis.SetCachedQueue(uint(doctorID), entries)
	return c.JSON(entries)
}

// uploadPrescriptionQR pushes the QR data URI to Cloudinary and swaps the
// stored reference for the hosted URL
func uploadPrescriptionQR(appointmentID uint, dataURI string) {
	url, err := utils.UploadToCloudinary(dataURI, fmt.Sprintf("prescription-%d", appointmentID), "prescriptions")
	if err != nil {
		log.Printf("Failed to upload prescription QR for appointment %d: %v", appointmentID, err)
		return
	}
	if err := db.DB.Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("prescription_qr", url).Error; err != nil {
		log.Printf("Failed to store prescription URL for appointment %d: %v", appointmentID, err)
	}
}

// notifyPatient emails the patient if they registered an email address
func notifyPatient(patientID uint, subject, body string) {
	var patient models.User
	if db.DB.First(&patient, patientID).RowsAffected == 0 || patient.Email == nil {
		return
	}
	utils.SendEmailAsync(*patient.Email, subject, body)
}

func isTransitionError(err error) bool {
	return errors.Is(err, models.ErrInvalidTransition)
}
