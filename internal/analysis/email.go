package analysis

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const emailDelims = `\s,;:()\[\]{}"'<>`

var (
	// The address must be bounded by a delimiter or the text edge on both sides,
	// so a neighbouring token is never merged into the local part.
	strictEmailRe = regexp.MustCompile(`(?:^|[` + emailDelims + `])([A-Za-z0-9][A-Za-z0-9._%+-]{2,}@[A-Za-z0-9][A-Za-z0-9.-]{1,}\.[A-Za-z]{2,})(?:[` + emailDelims + `]|$)`)
	looseEmailRe  = regexp.MustCompile(`\b[A-Za-z0-9][A-Za-z0-9._%+-]{2,}@[A-Za-z0-9][A-Za-z0-9.-]{1,}\.[A-Za-z]{2,}\b`)
)

// ExtractEmail finds the candidate's address in resume text. When several
// candidates match, the longest is returned since it is least likely truncated.
func ExtractEmail(text string) (string, bool) {
	var strict []string
	// Resume after each address so a delimiter shared by two addresses is
	// available to both.
	for pos := 0; pos < len(text); {
		m := strictEmailRe.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		strict = append(strict, text[pos+m[2]:pos+m[3]])
		pos += m[3]
	}
	if email := longest(strict); email != "" {
		return email, true
	}

	var valid []string
	for _, loc := range looseEmailRe.FindAllStringIndex(text, -1) {
		candidate := text[loc[0]:loc[1]]
		if validEmail(candidate) && !embedded(text, loc[0], loc[1]) {
			valid = append(valid, candidate)
		}
	}
	if email := longest(valid); email != "" {
		return email, true
	}
	return "", false
}

func validEmail(s string) bool {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(domain, "@") || len(local) < 2 {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && len(domain)-dot-1 >= 2
}

// embedded reports whether text[start:end] sits inside a longer alphanumeric run.
func embedded(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isAlnum(r) {
			return true
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isAlnum(r) {
			return true
		}
	}
	return false
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func longest(items []string) string {
	var best string
	for _, s := range items {
		if len(s) > len(best) {
			best = strings.TrimSpace(s)
		}
	}
	return best
}
