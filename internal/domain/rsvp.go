package domain

import "errors"

var (
	ErrInvalidRSVP = errors.New("invalid rsvp")
	ErrRateLimited = errors.New("too many rsvp submissions")
)

// GuestCounts son las opciones de asistentes del formulario
var GuestCounts = []string{"1", "2", "3", "4", "5+"}

type RSVPRequest struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Guests  string `json:"guests" form:"guests"`
	Message string `json:"message" form:"message"`
}

// RSVPResult contiene los enlaces para abrir el cliente de correo prellenado
type RSVPResult struct {
	GmailURL  string `json:"gmail_url"`
	MailtoURL string `json:"mailto_url"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Notified  bool   `json:"notified"`
}

// RSVPNotifier avisa a los novios de una confirmación
type RSVPNotifier interface {
	SendRSVPNotificacion(to string, rsvp RSVPRequest, subject string) error
}
