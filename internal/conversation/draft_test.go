package conversation

import "testing"

func TestParseSubject(t *testing.T) {
	tests := map[string]string{
		"draft email subject: Interview on Monday":     "Interview on Monday",
		"write email\nSUBJECT : Offer Letter\nthanks": "Offer Letter",
		"draft email about next steps":                 DefaultSubject,
		"subject:   ":                                  DefaultSubject,
	}
	for in, want := range tests {
		if got := ParseSubject(in); got != want {
			t.Errorf("ParseSubject(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCandidateName(t *testing.T) {
	tests := map[string]string{
		"jane.roe@example.com": "Jane",
		"BOB@example.com":      "Bob",
		"":                     "Candidate",
		"not-an-address":       "Candidate",
		".x@example.com":       "Candidate",
	}
	for in, want := range tests {
		if got := CandidateName(in); got != want {
			t.Errorf("CandidateName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatEmail(t *testing.T) {
	got := FormatEmail("Hello", "Jane", "Body.", "HR Team")
	want := "Subject: Hello\n\nDear Jane,\n\nBody.\n\nBest regards,\nHR Team"
	if got != want {
		t.Fatalf("FormatEmail() = %q", got)
	}
}
