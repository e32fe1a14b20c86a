package conversation

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildContext(t *testing.T) {
	a := testAnalysis()
	got := BuildContext(a, "Senior Go engineer for payments.", "jane.roe@example.com")

	for _, want := range []string{
		"Candidate Email: jane.roe@example.com",
		"Match Percentage: 72.5%",
		"Position Level Fit: Senior",
		"Acceptance Probability: Medium",
		"Key Strengths: Go, Postgres",
		"Key Gaps: Kafka",
		"Detailed Candidate Analysis:\nSolid backend engineer with six years of Go.",
		"=== JOB DESCRIPTION ===\nSenior Go engineer for payments.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q", want)
		}
	}
	if strings.Contains(got, "Resume Text Excerpt") {
		t.Error("resume excerpt rendered without resume text")
	}
}

func TestBuildContextTruncates(t *testing.T) {
	a := testAnalysis()
	a.ResumeText = strings.Repeat("r", 1600) + "TAIL"
	a.DetailedAnalysis = strings.Repeat("d", 4000) + "END"
	jd := strings.Repeat("j", 2500) + "OVERFLOW"

	got := BuildContext(a, jd, a.CandidateEmail)
	if strings.Contains(got, "OVERFLOW") {
		t.Error("job description not truncated at 2500")
	}
	if !strings.Contains(got, strings.Repeat("j", 2500)) {
		t.Error("job description shorter than its budget")
	}
	if strings.Contains(got, "TAIL") || !strings.Contains(got, strings.Repeat("r", 1500)) {
		t.Error("resume excerpt not truncated at 1500")
	}
	if !strings.Contains(got, a.DetailedAnalysis) {
		t.Error("detailed analysis was abridged")
	}
}

func TestBuildContextDefaults(t *testing.T) {
	got := BuildContext(testAnalysisEmpty(), "", "")
	for _, want := range []string{"Key Strengths: None specified", "Position Level Fit: Unknown", "Match Percentage: 0%"} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q", want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	s := strings.Repeat("é", 10)
	got := truncate(s, 4)
	if got != "éééé" {
		t.Fatalf("truncate() = %q", got)
	}
	if !utf8.ValidString(truncate("日本語テキスト", 3)) {
		t.Fatal("truncate split a rune")
	}
	if truncate("short", 10) != "short" {
		t.Fatal("truncate changed a short string")
	}
}
