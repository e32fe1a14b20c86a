package analysis

import (
	"reflect"
	"testing"
)

func TestNormalizePercentage(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{"73%", 73},
		{"73.5 %", 73.5},
		{"seventy", 0},
		{float64(82), 82},
		{"64", 64},
		{" 91.25 ", 91.25},
		{float64(140), 100},
		{float64(-3), 0},
		{"about 55% overall", 55},
		{nil, 0},
		{true, 0},
	}
	for _, tt := range tests {
		if got := NormalizePercentage(tt.in); got != tt.want {
			t.Errorf("NormalizePercentage(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseResponseStructured(t *testing.T) {
	raw := "Here is the result:\n```json\n" + `{
  "match_percentage": "78%",
  "position_level": "Senior",
  "acceptance_probability": "Medium",
  "acceptance_reasoning": "Three years at each employer.",
  "key_strengths": ["Go", "Kubernetes"],
  "key_gaps": ["No people management"],
  "detailed_analysis": "Strong backend profile.",
  "recommendation": "Schedule a technical interview."
}` + "\n```"

	got := ParseResponse(raw)
	want := CandidateAnalysis{
		MatchPercentage:       78,
		PositionLevel:         PositionSenior,
		AcceptanceProbability: ProbabilityMedium,
		AcceptanceReasoning:   "Three years at each employer.",
		KeyStrengths:          []string{"Go", "Kubernetes"},
		KeyGaps:               []string{"No people management"},
		DetailedAnalysis:      "Strong backend profile.",
		Recommendation:        "Schedule a technical interview.",
		Source:                SourceStructured,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseResponse() = %+v\nwant %+v", got, want)
	}
}

func TestParseResponseManualFallback(t *testing.T) {
	raw := "Candidate is Senior with 45% match. Acceptance: High."

	got := ParseResponse(raw)
	if got.Source != SourceManual {
		t.Fatalf("Source = %q, want %q", got.Source, SourceManual)
	}
	if got.PositionLevel != PositionSenior {
		t.Errorf("PositionLevel = %q, want %q", got.PositionLevel, PositionSenior)
	}
	if got.MatchPercentage != 45 {
		t.Errorf("MatchPercentage = %v, want 45", got.MatchPercentage)
	}
	if got.AcceptanceProbability != ProbabilityHigh {
		t.Errorf("AcceptanceProbability = %q, want %q", got.AcceptanceProbability, ProbabilityHigh)
	}
	if got.DetailedAnalysis != raw {
		t.Errorf("DetailedAnalysis = %q, want the full input", got.DetailedAnalysis)
	}
	if got.KeyStrengths != nil || got.Recommendation != "" {
		t.Errorf("unexpected fields recovered: %+v", got)
	}
}

func TestParseResponseBrokenJSONFallsBack(t *testing.T) {
	raw := `{"match_percentage": 60, "position_level": "Lead",`
	got := ParseResponse(raw)
	if got.Source != SourceManual {
		t.Fatalf("Source = %q, want %q", got.Source, SourceManual)
	}
	if got.PositionLevel != PositionLead {
		t.Errorf("PositionLevel = %q, want %q", got.PositionLevel, PositionLead)
	}
	if got.DetailedAnalysis != raw {
		t.Errorf("DetailedAnalysis = %q, want the full input", got.DetailedAnalysis)
	}
}

func TestManualExtractDefaults(t *testing.T) {
	got := ManualExtract("nothing useful here")
	if got.PositionLevel != PositionUnknown || got.AcceptanceProbability != ProbabilityUnknown || got.MatchPercentage != 0 {
		t.Fatalf("ManualExtract() = %+v, want Unknown defaults", got)
	}
}

func TestMatchLevelOrder(t *testing.T) {
	tests := map[string]PositionLevel{
		"a junior developer":             PositionJunior,
		"Junior to Senior range":         PositionJunior,
		"fits a mid-level role":          PositionMid,
		"Senior engineer":                PositionSenior,
		"Senior level expectations only": PositionUnknown,
		"Senior level, could Lead":       PositionLead,
		"Executive presence":             PositionExecutive,
	}
	for in, want := range tests {
		if got := matchLevel(in); got != want {
			t.Errorf("matchLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseProbabilityPriority(t *testing.T) {
	tests := map[string]Probability{
		"High":                 ProbabilityHigh,
		" low ":                ProbabilityLow,
		"medium to high":       ProbabilityHigh,
		"Low, maybe Medium":    ProbabilityMedium,
		"":                     ProbabilityUnknown,
		"cannot be determined": ProbabilityUnknown,
	}
	for in, want := range tests {
		if got := ParseProbability(in); got != want {
			t.Errorf("ParseProbability(%q) = %q, want %q", in, got, want)
		}
	}
}
