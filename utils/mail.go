package utils

import (
	"fmt"
	"strconv"
	"strings"

	"hotel-booking-backend/logger"
	"hotel-booking-backend/models"

	gomail "gopkg.in/gomail.v2"
)

// smtpSettings reads the SMTP configuration from the environment. ok is false
// when mail is not configured; callers then fall back to mock logging so local
// development works without an SMTP server.
func smtpSettings() (host string, port int, user, pass, fromName string, ok bool) {
	host = EnvOrDefault("SMTP_HOST", "")
	user = EnvOrDefault("SMTP_USERNAME", "")
	pass = EnvOrDefault("SMTP_PASSWORD", "")
	fromName = EnvOrDefault("SMTP_FROM_NAME", "Hotel Booking")
	port, _ = strconv.Atoi(EnvOrDefault("SMTP_PORT", "587"))
	ok = host != "" && user != "" && pass != ""
	return
}

func sendMail(to, subject, htmlBody string) error {
	host, port, user, pass, fromName, ok := smtpSettings()
	if !ok {
		logger.InfoLogger.Printf("[MOCK EMAIL] to:%s subject:%q", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", fromName, user))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return gomail.NewDialer(host, port, user, pass).DialAndSend(m)
}

func roomsListHTML(rooms []models.Room) string {
	if len(rooms) == 0 {
		return "<em>N/A</em>"
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, r := range rooms {
		if r.Type != "" {
			fmt.Fprintf(&b, "<li>Room %d (%s)</li>", r.RoomNumber, r.Type)
		} else {
			fmt.Fprintf(&b, "<li>Room %d</li>", r.RoomNumber)
		}
	}
	b.WriteString("</ul>")
	return b.String()
}

// SendBookingConfirmation mails the guest their booking summary.
func SendBookingConfirmation(b *models.Booking, rooms []models.Room) error {
	body := fmt.Sprintf(`<h2>Booking Confirmation</h2>
<p>Dear %s,</p>
<p>Thank you for booking with us. Your booking details:</p>
<p><b>Booking Number:</b> %s</p>
<p><b>Check-In:</b> %s<br><b>Check-Out:</b> %s (%d nights)</p>
<p><b>Rooms:</b> %s</p>
<p><b>Total:</b> %.2f (VAT %.2f)</p>`,
		b.GuestName, b.BookingNumber,
		b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"), b.Nights,
		roomsListHTML(rooms), b.TotalPrice, b.VATAmount)

	return sendMail(b.GuestEmail, "Booking Confirmation - "+b.BookingNumber, body)
}

// SendBookingNotificationToAdmin alerts the back office about a new booking.
func SendBookingNotificationToAdmin(b *models.Booking) error {
	adminEmail := EnvOrDefault("ADMIN_EMAIL", "")
	if adminEmail == "" {
		logger.InfoLogger.Printf("[MOCK EMAIL] admin notification for booking %s skipped: ADMIN_EMAIL not set", b.BookingNumber)
		return nil
	}
	body := fmt.Sprintf(`<h2>New Booking</h2>
<p><b>%s</b> - %s (%s)</p>
<p>%s to %s, %d nights, total %.2f</p>`,
		b.BookingNumber, b.GuestName, b.GuestEmail,
		b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"), b.Nights, b.TotalPrice)

	return sendMail(adminEmail, "New Booking - "+b.BookingNumber, body)
}

// SendCancellationAlert notifies the guest that the booking was canceled and
// what cancellation fee applies.
func SendCancellationAlert(b *models.Booking, fee float64) error {
	feeLine := "Free cancellation - no fee applies."
	if fee > 0 {
		feeLine = fmt.Sprintf("A cancellation fee of %.2f applies.", fee)
	}
	body := fmt.Sprintf(`<h2>Booking Canceled</h2>
<p>Dear %s,</p>
<p>Your booking <b>%s</b> (%s to %s) has been canceled.</p>
<p>%s</p>`,
		b.GuestName, b.BookingNumber,
		b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"), feeLine)

	return sendMail(b.GuestEmail, "Booking Canceled - "+b.BookingNumber, body)
}
