package jobs

import (
	"fmt"

	"github.com/aymanhs/souq/pkg/mail"
)

// PasswordResetJob emails a signed reset link. The link is only valid
// for ten minutes and self-invalidates once the password changes.
type PasswordResetJob struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Link  string `json:"link"`
}

func (j *PasswordResetJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received a request to reset your password.</p>"+
			`<p><a href="%s">Reset your password</a> (the link expires in 10 minutes).</p>`+
			"<p>If you did not request this, you can ignore this email.</p>",
		j.Name, j.Link,
	)

	return mail.To(j.Email).
		Subject("Reset your password").
		Body(body).
		Send()
}
