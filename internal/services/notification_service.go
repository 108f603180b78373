package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// InterestNotification carries everything the seller email needs.
type InterestNotification struct {
	VendedorEmail      string
	VendedorNombre     string
	InteresadoNombre   string
	InteresadoEmail    string
	InteresadoTelefono string
	ListingTitulo      string
	ListingURL         string
	Mensaje            string
}

// NotificationService notifies sellers about new interest in their listings.
// It is invoked fire-and-forget; a send failure never fails the originating
// request.
type NotificationService interface {
	SendInterestNotification(ctx context.Context, n *InterestNotification) error
}

// SMTPConfig configures the mail sender. An empty Host switches the service
// to log-only mode for development.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type notificationService struct {
	smtp SMTPConfig
}

func NewNotificationService(smtpCfg SMTPConfig) NotificationService {
	return &notificationService{smtp: smtpCfg}
}

func (s *notificationService) SendInterestNotification(ctx context.Context, n *InterestNotification) error {
	subject := fmt.Sprintf("Nuevo interés en tu anuncio: %s", n.ListingTitulo)
	body := s.buildBody(n)

	if s.smtp.Host == "" {
		log.Printf("[EMAIL] To=%s, Subject=%s", n.VendedorEmail, subject)
		return nil
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.smtp.From),
		fmt.Sprintf("To: %s", n.VendedorEmail),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.smtp.Host, s.smtp.Port)
	var auth smtp.Auth
	if s.smtp.User != "" {
		auth = smtp.PlainAuth("", s.smtp.User, s.smtp.Pass, s.smtp.Host)
	}
	return smtp.SendMail(addr, auth, s.smtp.From, []string{n.VendedorEmail}, []byte(msg))
}

func (s *notificationService) buildBody(n *InterestNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", n.VendedorNombre)
	fmt.Fprintf(&b, "%s está interesado en tu anuncio \"%s\".\n\n", n.InteresadoNombre, n.ListingTitulo)
	fmt.Fprintf(&b, "Datos de contacto:\n")
	fmt.Fprintf(&b, "  Email: %s\n", n.InteresadoEmail)
	if n.InteresadoTelefono != "" {
		fmt.Fprintf(&b, "  Teléfono: %s\n", n.InteresadoTelefono)
	}
	if n.Mensaje != "" {
		fmt.Fprintf(&b, "\nMensaje:\n%s\n", n.Mensaje)
	}
	fmt.Fprintf(&b, "\nVer anuncio: %s\n", n.ListingURL)
	return b.String()
}
