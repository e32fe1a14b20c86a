package conversation

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
	}{
		{"Please draft email for candidate", IntentGenerateEmail},
		{"send the email now", IntentSendEmail},
		{"draft email then send email", IntentGenerateEmail},
		{"What is the candidate's experience?", IntentQuery},
		{"COMPOSE EMAIL inviting them to interview", IntentGenerateEmail},
		{"ok, Send It", IntentSendEmail},
		{"write an email", IntentQuery},
		{"", IntentQuery},
	}
	for _, tt := range tests {
		if got := Classify(tt.in); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
