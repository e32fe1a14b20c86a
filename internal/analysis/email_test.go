package analysis

import "testing"

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"adjacent token not merged", "Contact: pe diyakhetarpal@gmail.com more text", "diyakhetarpal@gmail.com", true},
		{"trailing period excluded", "Reach me at j.doe@example.com.", "j.doe@example.com", true},
		{"angle brackets", "Jane Doe <jane.doe@corp.io>", "jane.doe@corp.io", true},
		{"longest wins", "abc@ex.io or alexander.hamilton@example.org", "alexander.hamilton@example.org", true},
		{"shared delimiter", "ann@ex.io bob.smith@ex.io", "bob.smith@ex.io", true},
		{"start of text", "candidate@mail.com | +1 555 0100", "candidate@mail.com", true},
		{"none", "No contact details provided.", "", false},
		{"short tld rejected", "name@host.c", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractEmail(tt.text)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("ExtractEmail(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	tests := map[string]bool{
		"jo@example.com": true,
		"j@example.com":  false,
		"jo@example":     false,
		"jo@example.c":   false,
		"jo@a@b.com":     false,
	}
	for in, want := range tests {
		if got := validEmail(in); got != want {
			t.Errorf("validEmail(%q) = %v, want %v", in, got, want)
		}
	}
}
