package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDocumentReady(toEmail, applicantName, documentType string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func documentLabel(documentType string) string {
	if documentType == "derecho_peticion" {
		return "derecho de petición"
	}
	return "acción de tutela"
}

func (s *emailService) SendDocumentReady(toEmail, applicantName, documentType string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Tu documento está listo")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hola %s,</h2>
			<p>Tu %s ya fue generado y está listo para descargar.</p>
			<a href="%s/mis-casos" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Ver mi documento</a>
			<p>Recuerda revisarlo antes de presentarlo.</p>
		</div>
	`, applicantName, documentLabel(documentType), s.frontendURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send document notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Document notice sent to %s\n", toEmail)
	return nil
}
