package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"sharedcalendar/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

type invitationData struct {
	Invitee   string
	EventName string
	Promoter  string
	Priority  string
	When      string
	Topics    string
}

// renderInvitation fills the embedded invitation templates and returns the
// subject, html, and text bodies.
func renderInvitation(invitee string, ev *domain.Event) (subject, htmlBody, textBody string, err error) {
	data := invitationData{
		Invitee:   invitee,
		EventName: ev.Name(),
		Promoter:  ev.Promoter(),
		Priority:  ev.Priority().String(),
		When:      ev.When().Format("2006-01-02 15h"),
		Topics:    strings.Join(ev.Topics(), " "),
	}
	subject, err = renderFile("invitation_subject.txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = renderFile("invitation.html", data, true)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = renderFile("invitation.txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func renderFile(name string, data invitationData, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if html {
		t, err := template.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	} else {
		t, err := texttemplate.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
