package infra

import (
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"aguacontrol/internal/config"

	"github.com/jordan-wright/email"
)

// remitenteNombre is the display name on outgoing report mail.
const remitenteNombre = "Agua Control"

// Mailer sends the weekly report to the owner. The SMTP user doubles as the
// sender address.
type Mailer struct {
	host      string
	addr      string
	auth      smtp.Auth
	remitente string
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		host:      cfg.SMTPHost,
		addr:      fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		remitente: fmt.Sprintf("%s <%s>", remitenteNombre, cfg.SMTPUser),
	}
	if cfg.SMTPUser != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return m
}

// Configurado is false when no SMTP host was set; the report endpoint then
// answers that sending is unavailable.
func (m *Mailer) Configurado() bool { return m != nil && m.host != "" }

// EnviarReporte mails the weekly PDF at pdfPath to destino. The file is
// read before dialing, so a missing report never opens a connection.
func (m *Mailer) EnviarReporte(destino, asunto, cuerpo, pdfPath string) error {
	e, err := m.armarCorreo(destino, asunto, cuerpo, pdfPath)
	if err != nil {
		return err
	}
	return e.Send(m.addr, m.auth)
}

func (m *Mailer) armarCorreo(destino, asunto, cuerpo, pdfPath string) (*email.Email, error) {
	destino = strings.TrimSpace(destino)
	if destino == "" {
		return nil, errors.New("mailer: sin destinatario")
	}
	e := email.NewEmail()
	e.From = m.remitente
	e.To = []string{destino}
	e.Subject = asunto
	e.Text = []byte(cuerpo)

	if pdfPath == "" {
		return e, nil
	}
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("mailer: reporte %s: %w", filepath.Base(pdfPath), err)
	}
	defer f.Close()
	if _, err := e.Attach(f, filepath.Base(pdfPath), "application/pdf"); err != nil {
		return nil, fmt.Errorf("mailer: adjuntar reporte: %w", err)
	}
	return e, nil
}
