package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Notifier emails inventory alerts to the configured recipient. A nil
// notifier drops every alert, so callers never branch on whether mail is
// configured.
type Notifier struct {
	host     string
	port     int
	user     string
	password string
	to       string
}

// NewNotifier creates a notifier for the given SMTP relay and recipient.
func NewNotifier(host string, port int, user, password, to string) *Notifier {
	return &Notifier{host: host, port: port, user: user, password: password, to: to}
}

// LowStockAlert emails a warning that a medication has reached its alert level.
func (n *Notifier) LowStockAlert(name string, currentStock, alertLevel int) error {
	if n == nil {
		return nil
	}
	subject := "Low stock alert: " + name
	text := fmt.Sprintf("Medication %s is down to %d units (alert level %d). Submit a replenish request.",
		name, currentStock, alertLevel)
	htmlBody := fmt.Sprintf(`
	<html>
	<body>
		<h2>Low stock alert</h2>
		<p>Medication <b>%s</b> is down to <b>%d</b> units (alert level %d).</p>
		<p>Submit a replenish request.</p>
	</body>
	</html>
	`, name, currentStock, alertLevel)
	return n.send(subject, text, htmlBody)
}

// ReplenishDecision emails the outcome of a replenish request.
func (n *Notifier) ReplenishDecision(requestID int, name string, amount int, approved bool) error {
	if n == nil {
		return nil
	}
	decision := "denied"
	if approved {
		decision = "approved"
	}
	subject := fmt.Sprintf("Replenish request #%d %s", requestID, decision)
	text := fmt.Sprintf("The request for %d units of %s was %s.", amount, name, decision)
	return n.send(subject, text, "")
}

// send delivers one message through the SMTP relay.
func (n *Notifier) send(subject, text, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.user)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	d := gomail.NewDialer(n.host, n.port, n.user, n.password)
	return d.DialAndSend(m)
}
