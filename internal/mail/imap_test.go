package mail

import (
	"sort"
	"strings"
	"testing"
)

const multipartMessage = "From: Ada Candidate <ada@example.com>\r\n" +
	"To: hr@corp.io\r\n" +
	"Subject: =?utf-8?q?Interview_availability?=\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=XYZ\r\n" +
	"\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>I am free on Tuesday.</p>\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"I am free on Tuesday.\r\n" +
	"--XYZ--\r\n"

func TestParseMessageMultipart(t *testing.T) {
	e, err := parseMessage(strings.NewReader(multipartMessage))
	if err != nil {
		t.Fatalf("parseMessage() error = %v", err)
	}
	if e.Subject != "Interview availability" {
		t.Errorf("Subject = %q", e.Subject)
	}
	if e.From != "Ada Candidate <ada@example.com>" {
		t.Errorf("From = %q", e.From)
	}
	if e.Body != "I am free on Tuesday." {
		t.Errorf("Body = %q", e.Body)
	}
}

func TestParseMessageDefaults(t *testing.T) {
	raw := "To: hr@corp.io\r\nContent-Type: text/plain\r\n\r\nplain body\r\n"
	e, err := parseMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parseMessage() error = %v", err)
	}
	if e.Subject != "No Subject" || e.From != "Unknown" || e.Body != "plain body" {
		t.Fatalf("parseMessage() = %+v", e)
	}
}

func TestNewestFirst(t *testing.T) {
	n := newestFirst{
		emails: []Email{{ID: "3"}, {ID: "5"}, {ID: "4"}},
		seqs:   []uint32{3, 5, 4},
	}
	sort.Sort(n)
	var ids []string
	for _, e := range n.emails {
		ids = append(ids, e.ID)
	}
	if got := strings.Join(ids, ","); got != "5,4,3" {
		t.Fatalf("order = %s, want 5,4,3", got)
	}
}

func TestLastN(t *testing.T) {
	tests := []struct {
		name     string
		total    uint32
		max      int
		from, to uint32
	}{
		{name: "fewer than max", total: 3, max: 10, from: 1, to: 3},
		{name: "exactly max", total: 10, max: 10, from: 1, to: 10},
		{name: "newest max", total: 50, max: 10, from: 41, to: 50},
		{name: "max beyond uint32", total: 7, max: 1 << 40, from: 1, to: 7},
		{name: "max truncating to small uint32", total: 100, max: 1<<32 + 5, from: 1, to: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := lastN(tt.total, tt.max)
			if from != tt.from || to != tt.to {
				t.Errorf("lastN(%d, %d) = %d-%d, want %d-%d", tt.total, tt.max, from, to, tt.from, tt.to)
			}
		})
	}
}
