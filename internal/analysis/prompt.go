package analysis

import "fmt"

func analysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert HR recruiter analyzing a candidate's resume against a job description.

RESUME:
%s

JOB DESCRIPTION:
%s

Analyze the candidate and provide a comprehensive assessment. Consider:
1. Skills match (technical and soft skills)
2. Experience relevance
3. Education requirements
4. Years of experience and career progression
5. Past companies and tenure (how long they stayed at each company)
6. Likelihood of accepting an offer based on:
   - Current/previous company prestige and size
   - Time served at each company (stability indicators)
   - Career trajectory

Return your result as a structured JSON object in this format:
{
  "match_percentage": <number between 0 and 100>,
  "position_level": "<Junior/Mid-level/Senior/Lead/Executive>",
  "acceptance_probability": "<High/Medium/Low>",
  "acceptance_reasoning": "<brief explanation based on past companies and tenure>",
  "key_strengths": ["<strength1>", "<strength2>"],
  "key_gaps": ["<gap1>", "<gap2>"],
  "detailed_analysis": "<comprehensive analysis explaining the match percentage and fit>",
  "recommendation": "<recommendation for next steps>"
}

Be specific and detailed. Base all reasoning only on the provided text.
Return only valid JSON. Do not include explanations, markdown, or text before or after the JSON.`, resumeText, jobDescription)
}
