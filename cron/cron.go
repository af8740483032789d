package cron

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/meinhoongagan/hospital-app/db"
	"github.com/meinhoongagan/hospital-app/models"
	"github.com/meinhoongagan/hospital-app/utils"
	"github.com/robfig/cron/v3"
)

// StartCronJobs initializes and starts the cron scheduler for appointment
// reminders and low-stock medicine alerts
func StartCronJobs() {
	c := cron.New()

	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}

	// Daily stock check at 8 AM
	_, err = c.AddFunc("0 8 * * *", sendLowStockAlerts)
	if err != nil {
		log.Fatalf("Failed to add low-stock cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// sendAppointmentReminders checks for upcoming appointments and sends reminders
func sendAppointmentReminders() {
	var appointments []models.Appointment
	now := time.Now()
	// Look for appointments starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Patient").Preload("Doctor").
		Where("status = ? AND scheduled_time BETWEEN ? AND ?", models.StatusBooked, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.Patient.Email == nil {
			continue
		}
		sendReminderEmail(&appointment)
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, *appointment.Patient.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment scheduled in one hour.</p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to cancel, do so as soon as possible.</p>
	`, appointment.Patient.FullName, appointment.Doctor.FullName,
		appointment.ScheduledTime.Format("2006-01-02 15:04:05"))

	utils.SendEmailAsync(*appointment.Patient.Email, subject, body)
}

// sendLowStockAlerts mails the admin a summary of medicines at or below
// their threshold
func sendLowStockAlerts() {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return
	}

	var medicines []models.Medicine
	if err := db.DB.Where("quantity <= threshold").Find(&medicines).Error; err != nil {
		log.Printf("Error fetching low-stock medicines: %v", err)
		return
	}
	if len(medicines) == 0 {
		return
	}

	body := "<p>The following medicines are at or below their stock threshold:</p><ul>"
	for _, m := range medicines {
		body += fmt.Sprintf("<li>%s: %d left (threshold %d)</li>", m.Name, m.Quantity, m.Threshold)
	}
	body += "</ul>"

	utils.SendEmailAsync(adminEmail, "Low Stock Alert", body)
	log.Printf("Sent low-stock alert for %d medicines", len(medicines))
}
