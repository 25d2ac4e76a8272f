// Package contact validates and delivers the contact form.
package contact

import (
	"errors"
	"fmt"
	"log"
	"net/mail"
	"net/smtp"
	"strings"
)

const maxMessageLength = 5000

var (
	ErrMissingField   = errors.New("contact: missing field")
	ErrInvalidEmail   = errors.New("contact: invalid email")
	ErrNotConfigured  = errors.New("SMTP credentials not configured")
	ErrMessageTooLong = fmt.Errorf("contact: message longer than %d characters", maxMessageLength)
)

// Message is one contact form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Validate trims the fields and checks them.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)

	switch {
	case m.Name == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case m.Email == "":
		return fmt.Errorf("%w: email", ErrMissingField)
	case m.Body == "":
		return fmt.Errorf("%w: message", ErrMissingField)
	}
	// A bare address only; display-name forms would be mailed as-is.
	addr, err := mail.ParseAddress(m.Email)
	if err != nil || addr.Address != m.Email || strings.ContainsAny(m.Email, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, m.Email)
	}
	if strings.ContainsAny(m.Name, "\r\n") {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if len(m.Body) > maxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// Sender delivers a validated message.
type Sender interface {
	Send(m Message) error
}

// SMTPSender mails submissions to the site owner.
type SMTPSender struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string

	// sendMail is smtp.SendMail outside tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host, port, user, password, to string) *SMTPSender {
	if to == "" {
		to = user
	}
	return &SMTPSender{Host: host, Port: port, User: user, Password: password, To: to, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(m Message) error {
	if s.User == "" || s.Password == "" {
		return ErrNotConfigured
	}

	msg := Compose(m, s.User, s.To)
	auth := smtp.PlainAuth("", s.User, s.Password, s.Host)

	if err := s.sendMail(s.Host+":"+s.Port, auth, s.User, []string{s.To}, msg); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}

	log.Printf("Email sent successfully from %s (%s)", m.Name, m.Email)
	return nil
}

// Compose builds the raw mail. Replies go to the visitor.
func Compose(m Message, from, to string) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", m.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Body)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + m.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
