package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/nedaZarei/WeddingSite/pkg/models"
)

const sendTimeout = 5 * time.Second

// Notifier tells the couple about a new RSVP.
type Notifier interface {
	NotifyRSVP(ctx context.Context, rsvp *models.RSVPResponse) error
}

type Nop struct{}

func (Nop) NotifyRSVP(context.Context, *models.RSVPResponse) error { return nil }

type MailerSendNotifier struct {
	ms   *mailersend.Mailersend
	from string
	to   string
}

// New returns a MailerSend notifier when every setting is present, Nop otherwise.
func New(apiKey, from, to string) Notifier {
	if apiKey == "" || from == "" || to == "" {
		return Nop{}
	}
	return &MailerSendNotifier{ms: mailersend.NewMailersend(apiKey), from: from, to: to}
}

func (n *MailerSendNotifier) NotifyRSVP(ctx context.Context, rsvp *models.RSVPResponse) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	subject, text := Summary(rsvp)

	message := n.ms.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: "Wedding RSVP", Email: n.from})
	message.SetRecipients([]mailersend.Recipient{{Email: n.to}})
	message.SetSubject(subject)
	message.SetText(text)
	message.SetHTML("<pre>" + html.EscapeString(text) + "</pre>")

	if _, err := n.ms.Email.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send rsvp email: %w", err)
	}
	return nil
}

// Summary renders the subject and plain-text body of the notification.
func Summary(rsvp *models.RSVPResponse) (string, string) {
	verb := "will attend"
	if rsvp.Attendance == models.AttendanceNo {
		verb = "will not attend"
	}
	subject := fmt.Sprintf("RSVP #%d: %s %s", rsvp.ID, rsvp.Name, verb)

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", rsvp.Name)
	fmt.Fprintf(&b, "Email: %s\n", rsvp.Email)
	if rsvp.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", rsvp.Phone)
	}
	fmt.Fprintf(&b, "Attendance: %s\n", rsvp.Attendance)
	fmt.Fprintf(&b, "Guests: %d\n", rsvp.GuestsCount)
	if len(rsvp.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, "Dietary: %s\n", strings.Join(rsvp.DietaryRestrictions, ", "))
	}
	if rsvp.OtherDietary != "" {
		fmt.Fprintf(&b, "Other dietary: %s\n", rsvp.OtherDietary)
	}
	if rsvp.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", rsvp.Message)
	}
	return subject, b.String()
}
