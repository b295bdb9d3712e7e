package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"learnpath-web/internal/models"
)

// Message is one outbound notification.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Notifier delivers messages to users. Implementations must be safe to
// call from a background goroutine.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// WelcomeMessage summarizes a completed onboarding for the user.
func WelcomeMessage(to string, p models.Profile) Message {
	stage := "School, class " + models.Value(p.SchoolYear)
	if models.Value(p.EducationLevel) == models.EducationBTech {
		stage = fmt.Sprintf("BTech year %s, %s", models.Value(p.BTechYear), models.Value(p.Stream))
	}
	interests := "none yet"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}

	return Message{
		To:      to,
		Subject: "You're all set",
		HTML: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Welcome aboard!</h2>
				<p>Your learning path is ready.</p>
				<p><strong>Stage:</strong> %s</p>
				<p><strong>Interests:</strong> %s</p>
				<p style="color: #888; font-size: 14px;">You can change these later in Settings.</p>
			</div>
		`, html.EscapeString(stage), html.EscapeString(interests)),
	}
}
