package contact

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{"ok", Message{Name: " Ana ", Email: "ana@example.com", Body: "hi"}, nil},
		{"no name", Message{Email: "ana@example.com", Body: "hi"}, ErrMissingField},
		{"no email", Message{Name: "Ana", Body: "hi"}, ErrMissingField},
		{"no body", Message{Name: "Ana", Email: "ana@example.com", Body: "   "}, ErrMissingField},
		{"bad email", Message{Name: "Ana", Email: "not-an-email", Body: "hi"}, ErrInvalidEmail},
		{"display name", Message{Name: "Bob", Email: "Bob <bob@x.io>", Body: "hi"}, ErrInvalidEmail},
		{"angle address", Message{Name: "Bob", Email: "<bob@x.io>", Body: "hi"}, ErrInvalidEmail},
		{"header injection", Message{Name: "Ana\r\nBcc: x@y.z", Email: "ana@example.com", Body: "hi"}, ErrMissingField},
		{"too long", Message{Name: "Ana", Email: "ana@example.com", Body: strings.Repeat("a", 5001)}, ErrMessageTooLong},
	}
	for _, tt := range tests {
		m := tt.msg
		err := m.Validate()
		if tt.want == nil && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}

	m := Message{Name: " Ana ", Email: " ana@example.com ", Body: " hi "}
	_ = m.Validate()
	if m.Name != "Ana" || m.Email != "ana@example.com" || m.Body != "hi" {
		t.Errorf("fields not trimmed: %+v", m)
	}
}

func TestCompose(t *testing.T) {
	raw := string(Compose(Message{Name: "Ana", Email: "ana@example.com", Body: "Hello"}, "me@example.com", "inbox@example.com"))

	for _, want := range []string{
		"To: inbox@example.com\r\n",
		"Subject: Portfolio Contact: Ana\r\n",
		"From: me@example.com\r\n",
		"Reply-To: ana@example.com\r\n",
		"Message:\nHello",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("expected %q in\n%s", want, raw)
		}
	}
}

func TestSMTPSenderRequiresCredentials(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "", "", "")
	if err := s.Send(Message{Name: "Ana", Email: "ana@example.com", Body: "hi"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSMTPSenderSends(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "me@example.com", "secret", "")

	var gotAddr, gotFrom string
	var gotTo []string
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	}
	if err := s.Send(Message{Name: "Ana", Email: "ana@example.com", Body: "hi"}); err != nil {
		t.Fatal(err)
	}
	if gotAddr != "smtp.example.com:587" || gotFrom != "me@example.com" {
		t.Errorf("unexpected envelope %s from %s", gotAddr, gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "me@example.com" {
		t.Errorf("recipient should default to the sender, got %v", gotTo)
	}

	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("421 try later") }
	if err := s.Send(Message{Name: "Ana", Email: "ana@example.com", Body: "hi"}); err == nil {
		t.Fatal("expected the send error to be returned")
	}
}
