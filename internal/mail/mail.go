// Package mail sends candidate email over SMTP and reads the HR inbox over IMAP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials is returned when a transport parameter is still empty
// after falling back to the configured defaults.
var ErrMissingCredentials = errors.New("missing email credentials")

// Credentials are the four parameters every transport needs.
type Credentials struct {
	Account string
	Secret  string
	Host    string
	Port    int
}

// Resolve fills each empty field from defaults independently.
func (c Credentials) Resolve(defaults Credentials) Credentials {
	if c.Account == "" {
		c.Account = defaults.Account
	}
	if c.Secret == "" {
		c.Secret = defaults.Secret
	}
	if c.Host == "" {
		c.Host = defaults.Host
	}
	if c.Port == 0 {
		c.Port = defaults.Port
	}
	return c
}

// Missing lists the names of the empty fields.
func (c Credentials) Missing() []string {
	var missing []string
	if c.Account == "" {
		missing = append(missing, "account")
	}
	if c.Secret == "" {
		missing = append(missing, "secret")
	}
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if c.Port == 0 {
		missing = append(missing, "port")
	}
	return missing
}

// Validate returns ErrMissingCredentials naming every empty field.
func (c Credentials) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// Protocol names the transport that failed.
type Protocol string

const (
	SMTP Protocol = "SMTP"
	IMAP Protocol = "IMAP"
)

// TransportError wraps a connection, authentication or delivery failure.
type TransportError struct {
	Protocol Protocol
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport failure: %v", e.Protocol, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Message is an outgoing plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Email is one message fetched from the inbox.
type Email struct {
	ID      string
	From    string
	Subject string
	Body    string
}

// Sender delivers a message using the given credentials.
type Sender interface {
	Send(ctx context.Context, creds Credentials, msg Message) error
}

// Fetcher reads up to max messages from the inbox, newest first.
type Fetcher interface {
	Fetch(ctx context.Context, creds Credentials, max int) ([]Email, error)
}
