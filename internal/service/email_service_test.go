package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campus-rent/internal/config"
)

func TestBuildEmailMessageHeaders(t *testing.T) {
	msg := buildEmailMessage(buildFromAddress("noreply@campus.test", "Campus Rent"), "a@mit.edu", "Your rental is confirmed", "body")
	for _, want := range []string{
		"From: \"Campus Rent\" <noreply@campus.test>\r\n",
		"To: a@mit.edu\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
		"\r\n\r\nbody",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestSendMailRejectsDisabledOrIncompleteConfig(t *testing.T) {
	ctx := context.Background()
	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := disabled.SendMail(ctx, "a@mit.edu", "s", "b"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("want ErrEmailServiceDisabled got %v", err)
	}
	incomplete := NewEmailService(&config.EmailConfig{Enabled: true, Host: "smtp.test"})
	if err := incomplete.SendMail(ctx, "a@mit.edu", "s", "b"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("want ErrEmailServiceNotConfigured got %v", err)
	}
	configured := NewEmailService(&config.EmailConfig{Enabled: true, Host: "smtp.test", Port: 25, From: "n@test"})
	if err := configured.SendMail(ctx, "not-an-email", "s", "b"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail got %v", err)
	}
}

func TestNormalizeEmailSendErrorRecipientRejected(t *testing.T) {
	err := normalizeEmailSendError(errors.New("550 5.1.1 recipient address rejected"))
	if !errors.Is(err, ErrEmailRecipientRejected) {
		t.Fatalf("want ErrEmailRecipientRejected got %v", err)
	}
	other := errors.New("dial tcp: connection refused")
	if got := normalizeEmailSendError(other); got != other {
		t.Fatalf("unrelated error should pass through, got %v", got)
	}
}
