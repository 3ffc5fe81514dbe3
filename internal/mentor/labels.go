package mentor

import (
	"regexp"
	"strings"

	"github.com/diogo/startupmentor/internal/models"
)

// labelRule rewrites the first match of pattern to a canonical label
type labelRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// separators matches a run of colons, hyphens and every character a
// browser regex counts as whitespace, which is wider than RE2's \s.
const separators = `[\t\n\v\f\r \x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}:-]*`

// labelRules are applied in order, each at most once
var labelRules = []labelRule{
	{labelPattern("problem", ""), models.LabelProblem},
	{labelPattern("target audience", ""), models.LabelTargetAudience},
	{labelPattern("market potential", ""), models.LabelMarketPotential},
	{labelPattern("competitor", "s"), models.LabelCompetitors},
	{labelPattern("risk", "s"), models.LabelRisks},
	{labelPattern("pitch", ""), models.LabelPitch},
}

// labelPattern matches header, an optional suffix and trailing separators.
// Letters fold case in ASCII only, so look-alikes such as the Kelvin sign
// do not match k.
func labelPattern(header, optional string) *regexp.Regexp {
	expr := foldASCII(header)
	if optional != "" {
		expr += "(?:" + foldASCII(optional) + ")?"
	}
	return regexp.MustCompile(expr + separators)
}

func foldASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteString("[" + string(r-'a'+'A') + string(r) + "]")
		case r >= 'A' && r <= 'Z':
			b.WriteString("[" + string(r) + string(r-'A'+'a') + "]")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// NormalizeLabels rewrites the section headers of a reply into their
// emoji-prefixed form. Separators following a header are absorbed into the
// label; everything else is left untouched.
func NormalizeLabels(reply string) string {
	for _, rule := range labelRules {
		reply = replaceFirst(rule.pattern, reply, rule.replacement)
	}
	return reply
}

func replaceFirst(re *regexp.Regexp, s, replacement string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + replacement + s[loc[1]:]
}
