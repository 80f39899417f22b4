package agent

import "regexp"

// Lines carrying likely credentials never leave the machine: the report is
// scrubbed before it goes into the LLM prompt.
var secretLineRegex = regexp.MustCompile(`(?im)^.*(api[_-]?key|secret|token|password|authorization)\s*[=:].*$`)

// Redact replaces credential-looking lines in a git report with a marker.
func Redact(report string) string {
	return secretLineRegex.ReplaceAllString(report, "[redacted]")
}
