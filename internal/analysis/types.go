package analysis

import (
	"regexp"
	"strings"
)

// PositionLevel is the seniority the model judged the candidate to fit.
type PositionLevel string

const (
	PositionJunior    PositionLevel = "Junior"
	PositionMid       PositionLevel = "Mid-level"
	PositionSenior    PositionLevel = "Senior"
	PositionLead      PositionLevel = "Lead"
	PositionExecutive PositionLevel = "Executive"
	PositionUnknown   PositionLevel = "Unknown"
)

// Probability is the model's estimate that the candidate accepts an offer.
type Probability string

const (
	ProbabilityHigh    Probability = "High"
	ProbabilityMedium  Probability = "Medium"
	ProbabilityLow     Probability = "Low"
	ProbabilityUnknown Probability = "Unknown"
)

// Source records which parse path produced an analysis.
type Source string

const (
	SourceStructured Source = "structured"
	SourceManual     Source = "manual"
)

// CandidateAnalysis is produced once per resume and job description pair and
// is not modified afterwards.
type CandidateAnalysis struct {
	MatchPercentage       float64       `json:"match_percentage"`
	PositionLevel         PositionLevel `json:"position_level"`
	AcceptanceProbability Probability   `json:"acceptance_probability"`
	AcceptanceReasoning   string        `json:"acceptance_reasoning"`
	KeyStrengths          []string      `json:"key_strengths"`
	KeyGaps               []string      `json:"key_gaps"`
	DetailedAnalysis      string        `json:"detailed_analysis"`
	Recommendation        string        `json:"recommendation"`
	CandidateEmail        string        `json:"email,omitempty"`

	ResumeText string `json:"-"`
	Source     Source `json:"source"`
}

// HasEmail reports whether a candidate address was extracted.
func (a CandidateAnalysis) HasEmail() bool {
	return a.CandidateEmail != ""
}

type levelRule struct {
	level PositionLevel
	match func(string) bool
}

var (
	seniorRe      = regexp.MustCompile(`[Ss]enior`)
	levelSuffixRe = regexp.MustCompile(`^\s+level`)
)

// levelRules are evaluated in order; the first match wins.
var levelRules = []levelRule{
	{PositionJunior, regexp.MustCompile(`[Jj]unior`).MatchString},
	{PositionMid, regexp.MustCompile(`[Mm]id[- ]?level|[Mm]id[- ]?senior`).MatchString},
	{PositionSenior, matchSenior},
	{PositionLead, regexp.MustCompile(`[Ll]ead`).MatchString},
	{PositionExecutive, regexp.MustCompile(`[Ee]xecutive`).MatchString},
}

// matchSenior matches "Senior" unless it is directly followed by "level".
func matchSenior(text string) bool {
	for _, loc := range seniorRe.FindAllStringIndex(text, -1) {
		if !levelSuffixRe.MatchString(text[loc[1]:]) {
			return true
		}
	}
	return false
}

func matchLevel(text string) PositionLevel {
	for _, r := range levelRules {
		if r.match(text) {
			return r.level
		}
	}
	return PositionUnknown
}

// ParsePositionLevel normalises a model-supplied level.
func ParsePositionLevel(s string) PositionLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior":
		return PositionJunior
	case "mid", "mid-level", "mid level", "midlevel":
		return PositionMid
	case "senior":
		return PositionSenior
	case "lead":
		return PositionLead
	case "executive":
		return PositionExecutive
	case "", "unknown":
		return PositionUnknown
	}
	return matchLevel(s)
}

var (
	highRe   = regexp.MustCompile(`[Hh]igh`)
	mediumRe = regexp.MustCompile(`[Mm]edium`)
	lowRe    = regexp.MustCompile(`[Ll]ow`)
)

func matchProbability(text string) Probability {
	switch {
	case highRe.MatchString(text):
		return ProbabilityHigh
	case mediumRe.MatchString(text):
		return ProbabilityMedium
	case lowRe.MatchString(text):
		return ProbabilityLow
	}
	return ProbabilityUnknown
}

// ParseProbability normalises a model-supplied acceptance probability.
func ParseProbability(s string) Probability {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ProbabilityHigh
	case "medium":
		return ProbabilityMedium
	case "low":
		return ProbabilityLow
	case "", "unknown":
		return ProbabilityUnknown
	}
	return matchProbability(s)
}
