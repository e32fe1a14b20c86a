package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{name: "long secret keeps edges", secret: "AIzaSyD-1234567890", want: "AIza***7890"},
		{name: "nine characters", secret: "abcdefghi", want: "abcd***fghi"},
		{name: "eight characters fully masked", secret: "abcdefgh", want: "***"},
		{name: "short secret fully masked", secret: "pw", want: "***"},
		{name: "multibyte edges kept whole", secret: "пароль-секрет", want: "паро***крет"},
		{name: "multibyte counted in characters", secret: "ééééé", want: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mask(tt.secret); got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.secret, got, tt.want)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	r := NewRedactor("sk-live-0123456789", "", "hunter22")

	got := r.Redact("auth failed for key sk-live-0123456789 with password hunter22")
	want := "auth failed for key sk-l***6789 with password ***"
	if got != want {
		t.Errorf("Redact() = %q, want %q", got, want)
	}

	if got := r.Redact("nothing secret here"); got != "nothing secret here" {
		t.Errorf("Redact() changed a clean message: %q", got)
	}
}

func TestRedactNilRedactor(t *testing.T) {
	var r *Redactor
	if got := r.Redact("plain"); got != "plain" {
		t.Errorf("nil Redactor changed message: %q", got)
	}
}

func TestRedactHookMasksMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(false, "gemini-secret-key-42")
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	logger.WithFields(logrus.Fields{
		"key": "gemini-secret-key-42",
	}).WithError(errors.New("bad key gemini-secret-key-42")).Warn("init failed: gemini-secret-key-42")

	out := buf.String()
	if strings.Contains(out, "gemini-secret-key-42") {
		t.Fatalf("secret leaked into log output: %s", out)
	}
	if !strings.Contains(out, "gemi***y-42") {
		t.Errorf("expected masked form in output, got: %s", out)
	}
}

func TestNewVerboseSetsDebug(t *testing.T) {
	if lvl := New(true).GetLevel(); lvl != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", lvl)
	}
	if lvl := New(false).GetLevel(); lvl != logrus.InfoLevel {
		t.Errorf("level = %v, want info", lvl)
	}
}
