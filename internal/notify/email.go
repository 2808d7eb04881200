package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
)

const verificationTemplate = `<p>Please click the following link to verify your email: <a href="{{.Link}}">{{.Link}}</a></p>`

const resetTemplate = `<p>A password reset was requested for your account. The link below is valid for one hour: <a href="{{.Link}}">{{.Link}}</a></p>
<p>If you did not request this, you can ignore this email.</p>`

const jobMatchTemplate = `<p>A new job matching your preferences has been posted:</p>
<p>Title: {{.Title}}<br>Company: {{.Company}}<br>Location: {{.Location}}</p>`

const jobUpdatedTemplate = `<p>The job title you added as a preference has been updated to:</p>
<p>Title: {{.Title}}<br>Company: {{.Company}}<br>Location: {{.Location}}</p>`

const applicationTemplate = `<p>{{.Applicant}} has applied to your job posting:</p>
<p>Title: {{.Title}}<br>Company: {{.Company}}<br>Location: {{.Location}}</p>`

// EmailNotifier renders and sends notifications over SMTP. Every send runs
// in its own goroutine; the caller has already committed its mutation.
type EmailNotifier struct {
	sender  *email.Sender
	baseURL string
}

func NewEmailNotifier(sender *email.Sender, baseURL string) *EmailNotifier {
	return &EmailNotifier{sender: sender, baseURL: baseURL}
}

func (n *EmailNotifier) VerificationEmail(to, token string) {
	link := fmt.Sprintf("%s/v1/auth/verify/%s", n.baseURL, token)
	n.dispatch(to, "Job Board - Verify Your Email", verificationTemplate, map[string]string{"Link": link})
}

func (n *EmailNotifier) PasswordResetEmail(to, token string) {
	link := fmt.Sprintf("%s/v1/auth/reset-password/%s", n.baseURL, token)
	n.dispatch(to, "Job Board - Password Reset", resetTemplate, map[string]string{"Link": link})
}

func (n *EmailNotifier) JobMatch(to string, job *domain.Job) {
	n.dispatch(to, "New Job Notification - Job Board", jobMatchTemplate, jobData(job, ""))
}

func (n *EmailNotifier) JobTitleUpdated(to string, job *domain.Job) {
	n.dispatch(to, "Job Title Update Notification", jobUpdatedTemplate, jobData(job, ""))
}

func (n *EmailNotifier) ApplicationReceived(to, applicantUsername string, job *domain.Job) {
	n.dispatch(to, "New Application - Job Board", applicationTemplate, jobData(job, applicantUsername))
}

func jobData(job *domain.Job, applicant string) map[string]string {
	return map[string]string{
		"Title":     job.Title,
		"Company":   job.Company,
		"Location":  job.Location,
		"Applicant": applicant,
	}
}

func (n *EmailNotifier) dispatch(to, subject, tmpl string, data map[string]string) {
	go func() {
		t, err := template.New("mail").Parse(tmpl)
		if err != nil {
			logger.Log.Error("Failed to parse email template", "subject", subject, "error", err)
			return
		}
		var body bytes.Buffer
		if err := t.Execute(&body, data); err != nil {
			logger.Log.Error("Failed to render email", "subject", subject, "error", err)
			return
		}
		if err := n.sender.Send(to, subject, body.String()); err != nil {
			logger.Log.Error("Failed to send email", "to", to, "subject", subject, "error", err)
		}
	}()
}
