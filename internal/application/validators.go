package application

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Maxito7/wedding_card/internal/domain"
)

const (
	maxNameLength    = 120
	maxMessageLength = 1000
)

var phoneRegex = regexp.MustCompile(`^\+?\d{7,15}$`)

// Validator contiene funciones de validación de datos
type Validator struct{}

// ValidateName valida el nombre del invitado
func (v *Validator) ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidRSVP)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", domain.ErrInvalidRSVP, maxNameLength)
	}
	return nil
}

// ValidatePhone valida el teléfono; es opcional
func (v *Validator) ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return nil
	}

	// Limpiar espacios, guiones, puntos y paréntesis
	clean := strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "").Replace(phone)

	if !phoneRegex.MatchString(clean) {
		return fmt.Errorf("%w: phone %q must have between 7 and 15 digits", domain.ErrInvalidRSVP, phone)
	}
	return nil
}

// ValidateGuests valida la cantidad de invitados del formulario
func (v *Validator) ValidateGuests(guests string) error {
	for _, g := range domain.GuestCounts {
		if guests == g {
			return nil
		}
	}
	return fmt.Errorf("%w: guests must be one of %s", domain.ErrInvalidRSVP, strings.Join(domain.GuestCounts, ", "))
}

// ValidateMessage limita el largo de la dedicatoria
func (v *Validator) ValidateMessage(message string) error {
	if utf8.RuneCountInString(message) > maxMessageLength {
		return fmt.Errorf("%w: message must be at most %d characters", domain.ErrInvalidRSVP, maxMessageLength)
	}
	return nil
}

// ValidateRSVP normaliza y valida una confirmación completa
func (v *Validator) ValidateRSVP(req *domain.RSVPRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Guests = strings.TrimSpace(req.Guests)
	req.Message = strings.TrimSpace(req.Message)
	if req.Guests == "" {
		req.Guests = domain.GuestCounts[0]
	}

	if err := v.ValidateName(req.Name); err != nil {
		return err
	}
	if err := v.ValidatePhone(req.Phone); err != nil {
		return err
	}
	if err := v.ValidateGuests(req.Guests); err != nil {
		return err
	}
	return v.ValidateMessage(req.Message)
}
