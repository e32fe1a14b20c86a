package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var percentRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

type parseState int

const (
	stateLocate parseState = iota
	stateStructured
	stateManual
	stateDone
)

// ParseResponse turns a raw model reply into an analysis. It never fails:
// a reply without a decodable JSON object goes through manual extraction.
func ParseResponse(raw string) CandidateAnalysis {
	var (
		state  = stateLocate
		span   string
		result CandidateAnalysis
	)
	for state != stateDone {
		switch state {
		case stateLocate:
			var ok bool
			if span, ok = locateJSON(raw); ok {
				state = stateStructured
			} else {
				state = stateManual
			}
		case stateStructured:
			r, err := decodeStructured(span)
			if err != nil {
				state = stateManual
				continue
			}
			result = r
			state = stateDone
		case stateManual:
			result = ManualExtract(raw)
			state = stateDone
		}
	}
	return result
}

// locateJSON returns the span from the first '{' to the last '}'.
func locateJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

func decodeStructured(span string) (CandidateAnalysis, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return CandidateAnalysis{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return CandidateAnalysis{
		MatchPercentage:       NormalizePercentage(fields["match_percentage"]),
		PositionLevel:         ParsePositionLevel(asString(fields["position_level"])),
		AcceptanceProbability: ParseProbability(asString(fields["acceptance_probability"])),
		AcceptanceReasoning:   asString(fields["acceptance_reasoning"]),
		KeyStrengths:          asStrings(fields["key_strengths"]),
		KeyGaps:               asStrings(fields["key_gaps"]),
		DetailedAnalysis:      asString(fields["detailed_analysis"]),
		Recommendation:        asString(fields["recommendation"]),
		Source:                SourceStructured,
	}, nil
}

// ManualExtract recovers what it can from a reply that is not valid JSON.
// The whole reply is kept as the detailed analysis.
func ManualExtract(raw string) CandidateAnalysis {
	result := CandidateAnalysis{
		PositionLevel:         matchLevel(raw),
		AcceptanceProbability: matchProbability(raw),
		DetailedAnalysis:      raw,
		Source:                SourceManual,
	}
	if m := percentRe.FindStringSubmatch(raw); m != nil {
		result.MatchPercentage = clampPercent(parseFloat(m[1]))
	}
	return result
}

// NormalizePercentage coerces a number, a numeric string or an "NN%" token
// into [0,100]. Anything else yields 0.
func NormalizePercentage(v any) float64 {
	switch val := v.(type) {
	case float64:
		return clampPercent(val)
	case int:
		return clampPercent(float64(val))
	case json.Number:
		f, err := val.Float64()
		if err == nil {
			return clampPercent(f)
		}
		return percentFromText(val.String())
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return clampPercent(f)
		}
		return percentFromText(val)
	}
	return 0
}

func percentFromText(s string) float64 {
	if m := percentRe.FindStringSubmatch(s); m != nil {
		return clampPercent(parseFloat(m[1]))
	}
	return 0
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func clampPercent(f float64) float64 {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 100:
		return 100
	}
	return f
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	}
	return fmt.Sprint(v)
}

func asStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return nil
}
