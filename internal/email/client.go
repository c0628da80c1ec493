package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/Maxito7/wedding_card/internal/domain"
)

// Client representa el cliente de correo electrónico
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
	send      func(*mail.Msg) error
}

// NewClient crea una nueva instancia del cliente de email
func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("puerto SMTP inválido: %w", err)
	}

	c := &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
	c.send = c.dialAndSend
	return c, nil
}

// SendEmail envía un correo electrónico
func (c *Client) SendEmail(to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("error al configurar remitente: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("error al configurar destinatario: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	return c.send(m)
}

func (c *Client) dialAndSend(m *mail.Msg) error {
	log.Printf("SMTP: connecting to %s:%d as user=%s", c.host, c.port, c.user)

	opts := []mail.Option{
		mail.WithPort(c.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{ServerName: c.host}),
	}
	if c.user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.user),
			mail.WithPassword(c.password),
		)
	}

	client, err := mail.NewClient(c.host, opts...)
	if err != nil {
		return fmt.Errorf("error al crear cliente SMTP (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	if err := client.DialAndSend(m); err != nil {
		// Añadir contexto útil al error sin exponer credenciales
		return fmt.Errorf("error al enviar correo (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}
	return nil
}

// SendRSVPNotificacion avisa a los novios de una nueva confirmación
func (c *Client) SendRSVPNotificacion(to string, rsvp domain.RSVPRequest, subject string) error {
	return c.SendEmail(to, subject, generarHTMLRSVP(rsvp))
}

func generarHTMLRSVP(rsvp domain.RSVPRequest) string {
	row := func(label, value string) string {
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		return fmt.Sprintf(`
					<tr>
						<td style="padding: 8px 0;"><strong>%s</strong></td>
						<td style="padding: 8px 0; text-align: right;">%s</td>
					</tr>`, label, strings.ReplaceAll(html.EscapeString(value), "\n", "<br>"))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="vi">
<head>
	<meta charset="UTF-8">
	<title>RSVP</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #fff1f2;">
	<table width="100%%" cellpadding="0" cellspacing="0" style="padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px;">
					<tr>
						<td style="background: linear-gradient(135deg, #f43f5e 0%%, #ec4899 100%%); padding: 30px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 24px;">Xác Nhận Tham Dự</h1>
						</td>
					</tr>
					<tr>
						<td style="padding: 30px;">
							<table width="100%%" cellpadding="0" cellspacing="0">%s%s%s%s
							</table>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
`,
		row("Họ tên", rsvp.Name),
		row("Số điện thoại", rsvp.Phone),
		row("Số người tham dự", rsvp.Guests),
		row("Lời chúc", rsvp.Message),
	)
}
