package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendNewLead(to, name, leadType, location string) error {
	body, err := renderTemplate("new_lead.html", NewLeadEmailData{
		Name:     name,
		LeadType: leadType,
		Location: location,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Novo lead de %s em %s 📍", leadType, location)
	return s.send(to, subject, body)
}

func (s *EmailSender) SendLeadSold(to, name, leadType string, buyerPrice int64) error {
	body, err := renderTemplate("lead_sold.html", LeadSoldEmailData{
		Name:       name,
		LeadType:   leadType,
		BuyerPrice: buyerPrice,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Seu lead de %s foi vendido, %s! 🎉", leadType, name)
	return s.send(to, subject, body)
}

func (s *EmailSender) SendAppointmentExpiring(to, name, leadType, date, slot string) error {
	body, err := renderTemplate("appointment_expiring.html", AppointmentEmailData{
		Name:     name,
		LeadType: leadType,
		Date:     date,
		Slot:     slot,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Visita do lead de %s começa em breve ⏰", leadType)
	return s.send(to, subject, body)
}

func renderTemplate(name string, data any) (string, error) {
	tmplPath := filepath.Join("templates", name)
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
