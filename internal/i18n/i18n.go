// Package i18n guarda los textos en vietnamita e inglés de la invitación y
// decide cuál ve cada request.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	// LangParam es el parámetro de query que elige el idioma
	LangParam = "lang"
	// LangCookieName guarda el idioma preferido del visitante
	LangCookieName = "wc_lang"
)

// Claves de mensajes
const (
	KeySectionInvitation = "section.invitation"
	KeySectionDetails    = "section.details"
	KeySectionGallery    = "section.gallery"
	KeySectionRSVP       = "section.rsvp"
	KeyDetailsTitle      = "details.title"
	KeyDetailsTime       = "details.time"
	KeyDetailsThanks     = "details.thanks"
	KeyGalleryTitle      = "gallery.title"
	KeyGalleryAlt        = "gallery.alt"
	KeyGalleryPrev       = "gallery.prev"
	KeyGalleryNext       = "gallery.next"
	KeyGalleryFullscreen = "gallery.fullscreen"
	KeyGalleryClose      = "gallery.close"
	KeyRSVPTitle         = "rsvp.title"
	KeyRSVPName          = "rsvp.name"
	KeyRSVPNameHint      = "rsvp.name_hint"
	KeyRSVPPhone         = "rsvp.phone"
	KeyRSVPPhoneHint     = "rsvp.phone_hint"
	KeyRSVPGuests        = "rsvp.guests"
	KeyRSVPGuestsOption  = "rsvp.guests_option"
	KeyRSVPGuestsMore    = "rsvp.guests_more"
	KeyRSVPMessage       = "rsvp.message"
	KeyRSVPMessageHint   = "rsvp.message_hint"
	KeyRSVPSubmit        = "rsvp.submit"
	KeyRSVPSubject       = "rsvp.subject"
	KeyRSVPBody          = "rsvp.body"
	KeyMusic             = "music.toggle"
)

var (
	Vietnamese = language.Vietnamese
	English    = language.English

	supported = []language.Tag{Vietnamese, English}
	matcher   = language.NewMatcher(supported)
)

var messages = map[language.Tag]map[string]string{
	Vietnamese: {
		KeySectionInvitation: "Thiệp Mời",
		KeySectionDetails:    "Chi Tiết",
		KeySectionGallery:    "Album Ảnh",
		KeySectionRSVP:       "Xác Nhận",
		KeyDetailsTitle:      "Chi Tiết Lễ Cưới",
		KeyDetailsTime:       "Thời gian: %s - %s",
		KeyDetailsThanks:     "Lời Cảm Ơn",
		KeyGalleryTitle:      "Album Ảnh Cưới",
		KeyGalleryAlt:        "Ảnh cưới %d",
		KeyGalleryPrev:       "Ảnh trước",
		KeyGalleryNext:       "Ảnh sau",
		KeyGalleryFullscreen: "Xem toàn màn hình",
		KeyGalleryClose:      "Đóng",
		KeyRSVPTitle:         "Xác Nhận Tham Dự",
		KeyRSVPName:          "Họ và Tên *",
		KeyRSVPNameHint:      "Nhập họ và tên của bạn",
		KeyRSVPPhone:         "Số Điện Thoại",
		KeyRSVPPhoneHint:     "Nhập số điện thoại",
		KeyRSVPGuests:        "Số Người Tham Dự",
		KeyRSVPGuestsOption:  "%s người",
		KeyRSVPGuestsMore:    "Hơn 4 người",
		KeyRSVPMessage:       "Lời Chúc",
		KeyRSVPMessageHint:   "Gửi lời chúc đến cô dâu chú rể...",
		KeyRSVPSubmit:        "Gửi qua Gmail",
		KeyRSVPSubject:       "Xác nhận tham dự lễ cưới %s",
		KeyRSVPBody:          "Xin chào,\n\nTôi xác nhận tham dự lễ cưới với thông tin sau:\n\nHọ tên: %s\nSố điện thoại: %s\nSố người tham dự: %s\nLời chúc: %s\n\nTrân trọng,\n%s\n",
		KeyMusic:             "Bật/tắt nhạc",
	},
	English: {
		KeySectionInvitation: "Invitation",
		KeySectionDetails:    "Details",
		KeySectionGallery:    "Gallery",
		KeySectionRSVP:       "RSVP",
		KeyDetailsTitle:      "Wedding Details",
		KeyDetailsTime:       "Time: %s - %s",
		KeyDetailsThanks:     "Thank You",
		KeyGalleryTitle:      "Wedding Album",
		KeyGalleryAlt:        "Wedding photo %d",
		KeyGalleryPrev:       "Previous photo",
		KeyGalleryNext:       "Next photo",
		KeyGalleryFullscreen: "View fullscreen",
		KeyGalleryClose:      "Close",
		KeyRSVPTitle:         "Confirm Attendance",
		KeyRSVPName:          "Full name *",
		KeyRSVPNameHint:      "Enter your full name",
		KeyRSVPPhone:         "Phone",
		KeyRSVPPhoneHint:     "Enter your phone number",
		KeyRSVPGuests:        "Guests",
		KeyRSVPGuestsOption:  "%s guest(s)",
		KeyRSVPGuestsMore:    "More than 4 guests",
		KeyRSVPMessage:       "Wishes",
		KeyRSVPMessageHint:   "Send your wishes to the couple...",
		KeyRSVPSubmit:        "Send via Gmail",
		KeyRSVPSubject:       "Wedding attendance confirmation %s",
		KeyRSVPBody:          "Hello,\n\nI confirm my attendance at the wedding:\n\nName: %s\nPhone: %s\nGuests: %s\nWishes: %s\n\nBest regards,\n%s\n",
		KeyMusic:             "Toggle music",
	},
}

var cat = mustBuildCatalog()

func mustBuildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(Vietnamese))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("i18n: " + key + ": " + err.Error())
			}
		}
	}
	return b
}

// Supported devuelve los idiomas soportados, el predeterminado primero
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Printer devuelve un printer ligado al catálogo de la invitación
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// ParseTag compara value con los idiomas soportados
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	return match(tag)
}

func match(tags ...language.Tag) (language.Tag, bool) {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.Und, false
	}
	return supported[idx], true
}

// ResolveTag elige el idioma según la query, luego la cookie y luego el
// header Accept-Language; si ninguno sirve usa def. El bool indica si el
// valor de la query debe guardarse en la cookie.
func ResolveTag(query, cookie, acceptLanguage string, def language.Tag) (language.Tag, bool) {
	if tag, ok := ParseTag(query); ok {
		return tag, true
	}
	if tag, ok := ParseTag(cookie); ok {
		return tag, false
	}
	if accept := strings.TrimSpace(acceptLanguage); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if tag, ok := match(tags...); ok {
				return tag, false
			}
		}
	}
	return def, false
}
