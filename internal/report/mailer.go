package report

import (
	"context"
	"time"

	"github.com/budgetwise/budget-service/internal/service"
	"github.com/budgetwise/budget-service/internal/utils/email"
	"github.com/sirupsen/logrus"
)

// Mailer delivers last month's report to every user with a profile. It is
// a read-only consumer of the monthly view; failures for one user never
// block the others.
type Mailer struct {
	svc    *service.Service
	sender *email.Sender
	log    *logrus.Logger
}

// NewMailer creates a report mailer
func NewMailer(svc *service.Service, sender *email.Sender, log *logrus.Logger) *Mailer {
	return &Mailer{svc: svc, sender: sender, log: log}
}

// SendMonthlyReports renders and mails the previous month's report to all
// users that have declared a profile
func (m *Mailer) SendMonthlyReports(ctx context.Context) {
	now := time.Now()
	year, month := previousMonth(now.Year(), int(now.Month()))

	users, err := m.svc.UsersWithProfile(ctx)
	if err != nil {
		m.log.Errorf("Failed to list report recipients: %v", err)
		return
	}

	for _, u := range users {
		view, err := m.svc.MonthlyView(ctx, u.Email, year, month)
		if err != nil {
			m.log.Errorf("Failed to build monthly view for %s: %v", u.Email, err)
			continue
		}
		pdf, err := RenderPDF(Build(u.Username, view))
		if err != nil {
			m.log.Errorf("Failed to render report for %s: %v", u.Email, err)
			continue
		}
		if err := m.sender.SendMonthlyReport(u.Email, u.Username, year, month, pdf); err != nil {
			continue
		}
	}
	m.log.Infof("Monthly report run finished for %d-%02d (%d recipients)", year, month, len(users))
}

func previousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
