package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/budgetwise/budget-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendMonthlyReport mails the given PDF report for (year, month) to a user
func (s *Sender) SendMonthlyReport(to, username string, year, month int, pdf []byte) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	monthName := time.Month(month).String()
	e.Subject = fmt.Sprintf("Your BudgetWise report for %s %d", monthName, year)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Attached is your monthly financial report for %s %d.\n"+
			"It covers your starting balance, credits, expenses and how your spending compares to the budgets you set.\n"+
			"\nBest regards,\nBudgetWise",
		username, monthName, year,
	)
	e.Text = []byte(body)

	filename := fmt.Sprintf("BudgetWise_Report_%d-%02d.pdf", year, month)
	if _, err := e.Attach(bytes.NewReader(pdf), filename, "application/pdf"); err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
