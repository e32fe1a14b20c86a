package logging

import "strings"

// Redactor masks configured secret values wherever they appear verbatim.
type Redactor struct {
	secrets []string
}

// NewRedactor returns a Redactor for the given secrets. Empty values are ignored.
func NewRedactor(secrets ...string) *Redactor {
	r := &Redactor{}
	for _, s := range secrets {
		if s != "" {
			r.secrets = append(r.secrets, s)
		}
	}
	return r
}

// Redact replaces every secret in msg with its masked form.
func (r *Redactor) Redact(msg string) string {
	if r == nil {
		return msg
	}
	for _, s := range r.secrets {
		if strings.Contains(msg, s) {
			msg = strings.ReplaceAll(msg, s, Mask(s))
		}
	}
	return msg
}

// Mask keeps the first and last four characters of secrets longer than eight
// characters. Shorter secrets are fully masked.
func Mask(secret string) string {
	r := []rune(secret)
	if len(r) > 8 {
		return string(r[:4]) + "***" + string(r[len(r)-4:])
	}
	return "***"
}
