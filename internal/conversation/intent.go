package conversation

import "strings"

// Intent is what an HR utterance asks the agent to do.
type Intent int

const (
	IntentQuery Intent = iota
	IntentGenerateEmail
	IntentSendEmail
)

func (i Intent) String() string {
	switch i {
	case IntentGenerateEmail:
		return "generate_email"
	case IntentSendEmail:
		return "send_email"
	}
	return "query"
}

type intentRule struct {
	intent   Intent
	keywords []string
}

// Order matters: an utterance matching both sets is a generate request.
var intentRules = []intentRule{
	{IntentGenerateEmail, []string{
		"prepare email", "create email", "write email", "draft email",
		"generate email", "compose email", "make email", "email to candidate",
	}},
	{IntentSendEmail, []string{
		"send email", "send it", "send the email", "send now",
		"dispatch email", "email send",
	}},
}

// Classify routes an utterance by case-insensitive keyword match.
func Classify(utterance string) Intent {
	lower := strings.ToLower(utterance)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentQuery
}
