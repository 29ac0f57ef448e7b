package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The worker renders Template with Data and delivers the result with the
// site logo attached inline.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"` // "verify_email", "reset_password", "reset_success"
	Data     map[string]any `json:"data,omitempty"`
}
