package application

import (
	"strings"

	"github.com/Maxito7/wedding_card/internal/domain"
)

type InvitationService struct {
	invitation *domain.Invitation
}

func NewInvitationService(invitation *domain.Invitation) *InvitationService {
	return &InvitationService{invitation: invitation}
}

func (s *InvitationService) Get() *domain.Invitation {
	return s.invitation
}

// TelURL convierte un teléfono de contacto en un enlace tel:
func TelURL(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return "tel:" + b.String()
}
