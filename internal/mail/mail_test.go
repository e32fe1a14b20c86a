package mail

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCredentialsResolve(t *testing.T) {
	defaults := Credentials{Account: "hr@corp.io", Secret: "app-pass", Host: "smtp.corp.io", Port: 587}

	got := Credentials{Secret: "override", Port: 465}.Resolve(defaults)
	want := Credentials{Account: "hr@corp.io", Secret: "override", Host: "smtp.corp.io", Port: 465}
	if got != want {
		t.Fatalf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestCredentialsMissing(t *testing.T) {
	full := Credentials{Account: "a", Secret: "s", Host: "h", Port: 25}
	tests := []struct {
		name  string
		creds Credentials
		want  []string
	}{
		{"complete", full, nil},
		{"no account", Credentials{Secret: "s", Host: "h", Port: 25}, []string{"account"}},
		{"no secret", Credentials{Account: "a", Host: "h", Port: 25}, []string{"secret"}},
		{"no host", Credentials{Account: "a", Secret: "s", Port: 25}, []string{"host"}},
		{"no port", Credentials{Account: "a", Secret: "s", Host: "h"}, []string{"port"}},
		{"empty", Credentials{}, []string{"account", "secret", "host", "port"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.Missing(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Missing() = %v, want %v", got, tt.want)
			}
			err := tt.creds.Validate()
			if (err != nil) != (tt.want != nil) {
				t.Fatalf("Validate() = %v", err)
			}
			if err != nil && !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("Validate() = %v, want ErrMissingCredentials", err)
			}
		})
	}
}

func TestSMTPSenderRejectsMissingCredentials(t *testing.T) {
	s := &SMTPSender{}
	err := s.Send(context.Background(), Credentials{Account: "a", Secret: "s", Port: 587}, Message{To: "x@y.io"})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("Send() = %v, want ErrMissingCredentials", err)
	}
	var terr *TransportError
	if errors.As(err, &terr) {
		t.Fatalf("Send() returned a transport error without dialing")
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("535 authentication failed")
	err := error(&TransportError{Protocol: SMTP, Err: cause})
	if !errors.Is(err, cause) {
		t.Fatal("cause not unwrapped")
	}
	if !strings.HasPrefix(err.Error(), "SMTP transport failure") {
		t.Fatalf("Error() = %q", err.Error())
	}
}
