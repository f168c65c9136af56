package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"mesalibre/internal/entities"
	"mesalibre/internal/utils"
)

const restaurantName = "Mesa Libre"

// SenderService sends the confirmation email and SMS after an admission.
// Delivery is best-effort: the reservation is already committed, so failures
// are only logged.
type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendReservationEmail(reservation entities.ReservationResponse, status string) {
	date, _ := utils.ParseDate(reservation.Date)

	emailData := entities.ReservationEmailData{
		Name:           reservation.Name,
		ReservationID:  reservation.ID,
		PartySize:      reservation.PartySize,
		DateFormatted:  date.Format("Monday, 02 Jan 2006"),
		SlotFormatted:  reservation.Slot,
		Status:         status,
		CurrentYear:    time.Now().Year(),
		RestaurantName: restaurantName,
	}

	emailSubject := fmt.Sprintf("Your %s reservation is %s", restaurantName, status)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour reservation at %s is %s.\n\n"+
			"Reservation details:\n"+
			"Reservation ID: %s\n"+
			"Guests: %d\n"+
			"Date: %s\n"+
			"Time: %s\n\n"+
			"Thank you for choosing %s.",
		emailData.Name, restaurantName, status,
		emailData.ReservationID, emailData.PartySize,
		emailData.DateFormatted, emailData.SlotFormatted,
		restaurantName,
	)

	var htmlBody string
	tmplPath := filepath.Join("internal", "templates", "reservation_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("WARN: could not parse email template (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			log.Printf("WARN: could not render email template for reservation %s: %v", emailData.ReservationID, err)
		} else {
			htmlBody = buf.String()
		}
	}

	go func(toEmail, toName, subject, plainBody, htmlContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlContent); err != nil {
			log.Printf("WARN (async): confirmation email for reservation %s failed: %v", emailData.ReservationID, err)
		}
	}(reservation.Email, reservation.Name, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendReservationSMS(reservation entities.ReservationResponse, status string) {
	message := fmt.Sprintf("%s: your reservation for %d on %s at %s is %s. Details in your email.",
		restaurantName, reservation.PartySize, reservation.Date, reservation.Slot, status)

	go func(toNumber, body, id string) {
		if err := SendSMS(toNumber, body); err != nil {
			log.Printf("WARN (async): confirmation SMS for reservation %s failed: %v", id, err)
		}
	}(reservation.Phone, message, reservation.ID)
}

func SendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not configured")
	}

	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured")
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = restaurantName
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", toEmailAddress, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Email sent to %s (subject: %s), status %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}
	return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
}

func SendSMS(toNumber string, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("twilio credentials are not fully configured")
	}

	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("WARN: destination number %q is not E.164, SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s: %w", toNumber, err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS sent to %s, message SID %s", toNumber, *resp.Sid)
	}
	return nil
}
