package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	ErrNotifyKeyMissing = errors.New("sendgrid api key is not set")
	ErrNotifyNoSender   = errors.New("notify sender address is not set")
	ErrNotifyNoRecip    = errors.New("notify recipient address is not set")
)

// Notify sends the build-status mail for a finished run. It is a no-op when
// the notify section is disabled.
func Notify(ctx context.Context, cfg NotifyConfig, result *Result) error {
	if !cfg.Enabled {
		return nil
	}

	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return ErrNotifyKeyMissing
	}
	if cfg.FromEmail == "" {
		return ErrNotifyNoSender
	}
	if cfg.ToEmail == "" {
		return ErrNotifyNoRecip
	}

	fromName := cfg.FromName
	if fromName == "" {
		fromName = cfg.FromEmail
	}
	toName := cfg.ToName
	if toName == "" {
		toName = cfg.ToEmail
	}

	subject := fmt.Sprintf("[%s] %s on %s", result.Status(), result.Job, result.Branch)
	body := buildNotifyBody(result)

	from := mail.NewEmail(fromName, cfg.FromEmail)
	to := mail.NewEmail(toName, cfg.ToEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		slog.Error("failed to send build notification", "error", err)
		return fmt.Errorf("sending build notification: %w", err)
	}

	slog.Debug("build notification sent", "to", cfg.ToEmail, "status", resp.StatusCode)
	return nil
}

func buildNotifyBody(result *Result) string {
	body := fmt.Sprintf("Job:      %s\nBranch:   %s\nOutcome:  %s\n",
		result.Job, result.Branch, result.Status())
	if result.JUnit != nil {
		body += fmt.Sprintf("Tests:    %d (%d failures, %d errors, %d skipped)\n",
			result.JUnit.Tests, result.JUnit.Failures, result.JUnit.Errors, result.JUnit.Skipped)
	}
	if result.Packaged {
		body += "Packaging: done\n"
	}
	return body
}
