package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

// InvitationData fills the invitation templates
type InvitationData struct {
	To          string
	Name        string // optional greeting name
	InviterName string
	Church      string
	Role        string
	AcceptURL   string
	ExpiresOn   time.Time
}

const invitationSubject = "You're invited to {{.Church}} on Shepherd"

const invitationText = `Hello{{if .Name}} {{.Name}}{{end}},

{{.InviterName}} invited you to join {{.Church}} on Shepherd as a {{.Role}}.

Shepherd helps you discover your personality, spiritual gifts, skills,
passions and experiences, and suggests ministries where you can serve.

Create your account here:
{{.AcceptURL}}

This invitation expires on {{.ExpiresOn.Format "January 2, 2006"}}.
`

const invitationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; line-height: 1.5;">
<p>Hello{{if .Name}} {{.Name}}{{end}},</p>
<p>{{.InviterName}} invited you to join <strong>{{.Church}}</strong> on Shepherd as a {{.Role}}.</p>
<p>Shepherd helps you discover your personality, spiritual gifts, skills,
passions and experiences, and suggests ministries where you can serve.</p>
<p><a href="{{.AcceptURL}}">Create your account</a></p>
<p style="color: #666;">This invitation expires on {{.ExpiresOn.Format "January 2, 2006"}}.</p>
</body>
</html>
`

var (
	invitationSubjectTmpl = texttemplate.Must(texttemplate.New("subject").Parse(invitationSubject))
	invitationTextTmpl    = texttemplate.Must(texttemplate.New("text").Parse(invitationText))
	invitationHTMLTmpl    = htmltemplate.Must(htmltemplate.New("html").Parse(invitationHTML))
)

// RenderInvitation builds the invitation message
func RenderInvitation(data InvitationData) (Message, error) {
	if data.Church == "" {
		data.Church = "your church"
	}
	if data.InviterName == "" {
		data.InviterName = "A staff member"
	}

	var subject, text, html bytes.Buffer
	if err := invitationSubjectTmpl.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("render subject: %w", err)
	}
	if err := invitationTextTmpl.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("render text: %w", err)
	}
	if err := invitationHTMLTmpl.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render html: %w", err)
	}

	return Message{
		To:      data.To,
		Subject: strings.TrimSpace(subject.String()),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
