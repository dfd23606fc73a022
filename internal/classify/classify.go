// Package classify implements the rule-based transaction classifier: it maps
// a raw bank statement description to a spending category and a short
// human-friendly description.
package classify

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Result is the outcome of classifying a raw description.
type Result struct {
	Category         string `json:"category"`
	CleanDescription string `json:"clean_description"`
}

var (
	pixNameRegex   = regexp.MustCompile(`pix[\s\-]*[a-zA-Z]*[\s\-]*([a-zA-Z\s.]+)`)
	splitRegex     = regexp.MustCompile(`[\*\- ]`)
	keywordRegexes = map[string]*regexp.Regexp{}
)

func init() {
	for _, r := range rules {
		for _, kw := range r.keywords {
			keywordRegexes[kw] = regexp.MustCompile(`(?i)[\*\- ]\s*(` + regexp.QuoteMeta(kw) + `[a-zA-Z0-9 .]*)`)
		}
	}
}

// titleCase title-cases each word using Brazilian Portuguese rules.
// A Caser is not safe for concurrent use, so one is created per call.
func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}

// capitalize upper-cases the first rune of s, like the keyword fallback in
// the clean-description extraction.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// cleanDescription extracts a humanized description from the raw text: the
// run of text starting at the matched keyword, preceded by '*', '-' or a
// space. When no such run of more than three characters exists, the keyword
// itself is capitalized.
func cleanDescription(raw, keyword string) string {
	if m := keywordRegexes[keyword].FindStringSubmatch(raw); m != nil {
		extracted := strings.TrimSpace(m[1])
		if len(extracted) > 3 {
			return titleCase(extracted)
		}
	}
	return capitalize(keyword)
}

// pixDescription extracts the counterparty name from a Pix description,
// dropping the direction words that banks embed in the statement text.
func pixDescription(lower string) string {
	m := pixNameRegex.FindStringSubmatch(lower)
	if m == nil {
		return "Transação Pix"
	}
	name := strings.TrimSpace(m[1])
	name = strings.ReplaceAll(name, "recebida", "")
	name = strings.ReplaceAll(name, "enviado", "")
	name = strings.TrimSpace(name)
	if len(name) > 3 {
		return titleCase(name)
	}
	return "Transação Pix"
}

// Process classifies a raw statement description. It never fails: anything
// that matches no rule lands in Outros with a best-effort description taken
// from the tail of the raw text.
func Process(rawDescription string) Result {
	lower := strings.ToLower(rawDescription)

	// Pix transfers carry the counterparty name rather than a merchant, so
	// they are handled before the keyword rules.
	if strings.Contains(lower, "pix") {
		return Result{Category: "Pix", CleanDescription: pixDescription(lower)}
	}

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return Result{Category: r.category, CleanDescription: cleanDescription(rawDescription, kw)}
			}
		}
	}

	// No rule matched: use the last chunk of the description with at least
	// four characters, or the whole text when nothing qualifies.
	parts := splitRegex.Split(rawDescription, -1)
	for i := len(parts) - 1; i >= 0; i-- {
		part := strings.TrimSpace(parts[i])
		if len([]rune(part)) >= 4 {
			return Result{Category: "Outros", CleanDescription: titleCase(part)}
		}
	}
	return Result{Category: "Outros", CleanDescription: titleCase(strings.TrimSpace(rawDescription))}
}
