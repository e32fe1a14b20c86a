package conversation

import (
	"strconv"
	"strings"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
)

const (
	jobDescriptionBudget = 2500
	resumeExcerptBudget  = 1500
)

// BuildContext renders the system block for a candidate. Budgets count runes.
func BuildContext(a analysis.CandidateAnalysis, jobDescription, candidateEmail string) string {
	match := formatPercent(a.MatchPercentage)

	var b strings.Builder
	b.WriteString("You are an expert HR assistant helping with candidate evaluation and communication. ")
	b.WriteString("You have access to the candidate's resume information and the job description. ")
	b.WriteString("ALWAYS use this information to answer questions accurately.\n\n")

	b.WriteString("=== CANDIDATE INFORMATION ===\n")
	b.WriteString("Candidate Email: " + candidateEmail + "\n")
	b.WriteString("Match Percentage: " + match + "%\n")
	b.WriteString("Position Level Fit: " + orUnknown(string(a.PositionLevel)) + "\n")
	b.WriteString("Acceptance Probability: " + orUnknown(string(a.AcceptanceProbability)) + "\n")
	b.WriteString("Key Strengths: " + joinOrNone(a.KeyStrengths) + "\n")
	b.WriteString("Key Gaps: " + joinOrNone(a.KeyGaps) + "\n")
	b.WriteString("\nDetailed Candidate Analysis:\n" + a.DetailedAnalysis + "\n")
	if a.ResumeText != "" {
		b.WriteString("\nResume Text Excerpt:\n" + truncate(a.ResumeText, resumeExcerptBudget) + "\n")
	}

	b.WriteString("\n=== JOB DESCRIPTION ===\n")
	b.WriteString(truncate(jobDescription, jobDescriptionBudget) + "\n\n")

	b.WriteString("=== YOUR ROLE ===\n")
	b.WriteString("You MUST use the candidate and job information provided above to answer ALL questions. When asked about:\n")
	b.WriteString("- Candidate email: Provide " + candidateEmail + "\n")
	b.WriteString("- Job match: Use the match percentage (" + match + "%) and detailed analysis\n")
	b.WriteString("- Candidate experience/skills: Refer to the resume information and analysis above\n")
	b.WriteString("- Any candidate details: Use the information provided in the candidate section\n\n")
	b.WriteString("IMPORTANT: You have the candidate and job information. Use it to answer questions directly. ")
	b.WriteString("Do NOT ask for information that is already provided above.")
	return b.String()
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None specified"
	}
	return strings.Join(items, ", ")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
