/*
Copyright 2024 Entrega Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package mailer wraps the outbound email collaborator behind a small
// interface so the warranty notification pass can be tested without a
// live SMTP relay.
package mailer

import (
	"github.com/pkg/errors"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends one HTML email. Implementations do not retry; a failed send
// surfaces to the caller and the next manual run tries again.
type Mailer interface {
	SendHTML(to, subject, htmlBody string) error
}

// SMTP is the gomail-backed Mailer.
type SMTP struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTP builds an SMTP mailer from relay settings.
func NewSMTP(host string, port int, user, pass, from string) *SMTP {
	return &SMTP{host: host, port: port, user: user, pass: pass, from: from}
}

func (s *SMTP) SendHTML(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	return errors.Wrapf(d.DialAndSend(m), "sending mail to %s", to)
}
