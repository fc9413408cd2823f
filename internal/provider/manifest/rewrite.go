// Package manifest edits a requirements-style dependency file in place.
package manifest

import (
	"regexp"
	"strings"
)

var (
	namePattern      = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)`)
	separatorPattern = regexp.MustCompile(`[-_.]+`)
)

// NormalizeName returns the PEP 503 form of a distribution name, so that
// "Google_Cloud.Storage" and "google-cloud-storage" compare equal.
func NormalizeName(name string) string {
	return strings.ToLower(separatorPattern.ReplaceAllString(name, "-"))
}

// RequirementName returns the normalized distribution name declared by a
// requirements line, or "" for blank lines, comments, and pip options.
func RequirementName(line string) string {
	line = strings.TrimSpace(line)
	if i := strings.Index(line, " #"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
		return ""
	}
	m := namePattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return NormalizeName(strings.TrimRight(m[1], "._-"))
}

// Rules describes the edits applied to a manifest.
type Rules struct {
	Remove  []string
	Replace map[string]string
	Append  []string
}

// Empty reports whether the rules change nothing.
func (r Rules) Empty() bool {
	return len(r.Remove) == 0 && len(r.Replace) == 0 && len(r.Append) == 0
}

// Change records one edit made by Rewrite.
type Change struct {
	Kind string // "remove", "replace", or "append"
	Line string
}

// Rewrite applies rules to the manifest content. Comments, blank lines and
// line order are preserved. Applying the same rules to the output changes
// nothing.
func Rewrite(content string, rules Rules) (string, []Change) {
	remove := make(map[string]bool, len(rules.Remove))
	for _, name := range rules.Remove {
		remove[NormalizeName(name)] = true
	}
	replace := make(map[string]string, len(rules.Replace))
	for name, line := range rules.Replace {
		replace[NormalizeName(name)] = strings.TrimSpace(line)
	}

	appended := make(map[string]string, len(rules.Append))
	for _, line := range rules.Append {
		line = strings.TrimSpace(line)
		appended[RequirementName(line)] = line
	}

	newline := "\n"
	if strings.Contains(content, "\r\n") {
		newline = "\r\n"
	}
	body := strings.TrimSuffix(strings.TrimSuffix(content, "\n"), "\r")

	var lines []string
	if content != "" {
		lines = strings.Split(body, "\n")
	}

	var (
		out     = make([]string, 0, len(lines)+len(rules.Append))
		present = make(map[string]bool, len(lines))
		changes []Change
	)

	for _, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")
		name := RequirementName(line)
		switch {
		case name == "":
			out = append(out, line)
		case remove[name] && appended[name] == strings.TrimSpace(line):
			// Added by an earlier run; removing it would only re-append it.
			out = append(out, line)
			present[name] = true
		case remove[name]:
			changes = append(changes, Change{Kind: "remove", Line: line})
		case replace[name] != "":
			repl := replace[name]
			if strings.TrimSpace(line) != repl {
				changes = append(changes, Change{Kind: "replace", Line: repl})
			}
			out = append(out, repl)
			present[RequirementName(repl)] = true
		default:
			out = append(out, line)
			present[name] = true
		}
	}

	for _, line := range rules.Append {
		line = strings.TrimSpace(line)
		name := RequirementName(line)
		if name == "" || present[name] {
			continue
		}
		out = append(out, line)
		present[name] = true
		changes = append(changes, Change{Kind: "append", Line: line})
	}

	if len(changes) == 0 {
		return content, nil
	}

	result := strings.Join(out, newline)
	if len(out) > 0 {
		result += newline
	}
	if result == content {
		return content, nil
	}
	return result, changes
}
