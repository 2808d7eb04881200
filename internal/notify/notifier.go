package notify

import "go-jobboard-backend/internal/domain"

// Notifier is the fire-and-forget boundary for outbound email. Delivery
// failures are logged and dropped; they never fail or roll back the
// mutation that triggered them.
type Notifier interface {
	VerificationEmail(to, token string)
	PasswordResetEmail(to, token string)
	JobMatch(to string, job *domain.Job)
	JobTitleUpdated(to string, job *domain.Job)
	ApplicationReceived(to, applicantUsername string, job *domain.Job)
}

// Noop discards every notification. Used when SMTP is not configured and in
// tests.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) VerificationEmail(string, string)                {}
func (Noop) PasswordResetEmail(string, string)               {}
func (Noop) JobMatch(string, *domain.Job)                    {}
func (Noop) JobTitleUpdated(string, *domain.Job)             {}
func (Noop) ApplicationReceived(string, string, *domain.Job) {}
