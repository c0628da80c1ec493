package application

import (
	"log"
	"net/url"
	"strings"

	"golang.org/x/text/message"

	"github.com/Maxito7/wedding_card/internal/domain"
	"github.com/Maxito7/wedding_card/internal/i18n"
)

const gmailComposeURL = "https://mail.google.com/mail/"

// RSVPService arma los enlaces de confirmación y avisa por correo si hay SMTP
type RSVPService struct {
	validator Validator
	limiter   *RateLimiter
	notifier  domain.RSVPNotifier
	to        string
	couple    string
}

// NewRSVPService crea el servicio. notifier puede ser nil.
func NewRSVPService(invitation *domain.Invitation, limiter *RateLimiter, notifier domain.RSVPNotifier) *RSVPService {
	return &RSVPService{
		limiter:  limiter,
		notifier: notifier,
		to:       invitation.RSVPEmail,
		couple:   invitation.Couple,
	}
}

// Submit valida la confirmación de clientID y devuelve los enlaces de correo
func (s *RSVPService) Submit(clientID string, req domain.RSVPRequest, p *message.Printer) (*domain.RSVPResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Allow(clientID); err != nil {
			return nil, err
		}
	}
	if err := s.validator.ValidateRSVP(&req); err != nil {
		return nil, err
	}

	subject := p.Sprintf(i18n.KeyRSVPSubject, s.couple)
	body := p.Sprintf(i18n.KeyRSVPBody, req.Name, req.Phone, req.Guests, req.Message, req.Name)

	result := &domain.RSVPResult{
		GmailURL:  s.gmailURL(subject, body),
		MailtoURL: s.mailtoURL(subject, body),
		Subject:   subject,
		Body:      body,
	}

	if s.notifier != nil {
		if err := s.notifier.SendRSVPNotificacion(s.to, req, subject); err != nil {
			log.Printf("❌ Error enviando aviso de RSVP de %q: %v", req.Name, err)
		} else {
			result.Notified = true
		}
	}

	log.Printf("💌 RSVP recibido: %s (%s personas)", req.Name, req.Guests)
	return result, nil
}

// Remaining devuelve cuántas confirmaciones le quedan a clientID en la
// ventana actual; -1 si no hay límite.
func (s *RSVPService) Remaining(clientID string) int {
	if s.limiter == nil {
		return -1
	}
	return s.limiter.GetRemaining(clientID)
}

func (s *RSVPService) gmailURL(subject, body string) string {
	return gmailComposeURL + "?view=cm&fs=1&to=" + encodeURIComponent(s.to) +
		"&su=" + encodeURIComponent(subject) +
		"&body=" + encodeURIComponent(body)
}

func (s *RSVPService) mailtoURL(subject, body string) string {
	return "mailto:" + encodeURIComponent(s.to) + "?subject=" + encodeURIComponent(subject) + "&body=" + encodeURIComponent(body)
}

// encodeURIComponent escapa como lo haría un navegador: espacios como %20
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
