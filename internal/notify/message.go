// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// ResetMessage is everything needed to render a password reset e-mail.
type ResetMessage struct {
	To        string
	Name      string
	Link      string
	ExpiresAt time.Time
}

const resetSubject = "Reset your password"

const resetTemplate = `Hello{{ if .Name }} {{ .Name }}{{ end }},

We received a request to reset the password for your account.
Open the link below to choose a new password:

{{ .Link }}

This link expires at {{ .ExpiresAt.UTC.Format "2006-01-02 15:04 MST" }} and can be used once.
If you did not request a reset, you can ignore this e-mail.
`

var resetTmpl = template.Must(template.New("reset").Parse(resetTemplate))

// Render returns the plain-text body of msg.
func (msg ResetMessage) Render() (string, error) {
	var buf bytes.Buffer
	if err := resetTmpl.Execute(&buf, msg); err != nil {
		return "", fmt.Errorf("failed to execute reset template: %w", err)
	}
	return buf.String(), nil
}
