package domain

import "errors"

var ErrInvalidContent = errors.New("invalid invitation content")

// Section identifica cada pestaña de la invitación
type Section string

const (
	SectionInvitation Section = "invitation"
	SectionDetails    Section = "details"
	SectionGallery    Section = "gallery"
	SectionRSVP       Section = "rsvp"
)

// Sections devuelve las pestañas en el orden de navegación
func Sections() []Section {
	return []Section{SectionInvitation, SectionDetails, SectionGallery, SectionRSVP}
}

// ParseSection devuelve la pestaña pedida o la invitación si no es válida
func ParseSection(s string) Section {
	for _, sec := range Sections() {
		if string(sec) == s {
			return sec
		}
	}
	return SectionInvitation
}

type Ceremony struct {
	Name      string `yaml:"name" json:"name"`
	Date      string `yaml:"date" json:"date"`
	StartTime string `yaml:"start_time" json:"start_time"`
	EndTime   string `yaml:"end_time" json:"end_time"`
	Place     string `yaml:"place" json:"place"`
	Address   string `yaml:"address" json:"address"`
}

type Contact struct {
	Label string `yaml:"label" json:"label"`
	Phone string `yaml:"phone" json:"phone"`
}

// Invitation es el contenido estático de la tarjeta
type Invitation struct {
	Couple     string     `yaml:"couple" json:"couple"`
	Greeting   string     `yaml:"greeting" json:"greeting"`
	Date       string     `yaml:"date" json:"date"`
	Ceremonies []Ceremony `yaml:"ceremonies" json:"ceremonies"`
	Closing    string     `yaml:"closing" json:"closing"`
	Contacts   []Contact  `yaml:"contacts" json:"contacts"`
	RSVPEmail  string     `yaml:"rsvp_email" json:"rsvp_email"`
	Music      string     `yaml:"music" json:"music"`
	Images     []string   `yaml:"images" json:"images"`
}
