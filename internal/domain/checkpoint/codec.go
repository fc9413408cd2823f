package checkpoint

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	keyDoneStep    = "DONE_STEP"
	savedKeySuffix = "_SAVED"
)

var variableNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// KeyFor returns the state file key of a saved variable.
//
//	project_id -> PROJECT_ID_SAVED
func KeyFor(name string) string {
	return strings.ToUpper(name) + savedKeySuffix
}

// Parse decodes a state file. Parsing never fails: blank lines, comments,
// lines without '=', malformed DONE_STEP values and unknown keys are skipped
// so a damaged file degrades to a fresh start instead of a hard error.
func Parse(data []byte) *State {
	st := NewState()

	for _, raw := range bytes.Split(data, []byte("\n")) {
		line := strings.TrimSpace(string(raw))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch {
		case key == keyDoneStep:
			n, err := strconv.Atoi(unquote(value))
			if err != nil || n < 0 {
				continue
			}
			st.DoneStep = n
		case strings.HasSuffix(key, savedKeySuffix) && len(key) > len(savedKeySuffix):
			name := strings.ToLower(strings.TrimSuffix(key, savedKeySuffix))
			if !variableNameRegex.MatchString(name) {
				continue
			}
			st.Variables[name] = unquote(value)
		}
	}

	return st
}

// MarshalText encodes the state as a complete state file.
// DONE_STEP comes first, followed by saved variables sorted by name.
func (s *State) MarshalText() ([]byte, error) {
	if s.DoneStep < 0 {
		return nil, fmt.Errorf("%w: done step %d is negative", ErrInvalidVariable, s.DoneStep)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "%s=%d\n", keyDoneStep, s.DoneStep)

	for _, name := range s.Names() {
		value := s.Variables[name]
		if !variableNameRegex.MatchString(name) {
			return nil, fmt.Errorf("%w: name %q", ErrInvalidVariable, name)
		}
		if strings.ContainsAny(value, "\r\n") {
			return nil, fmt.Errorf("%w: value of %q contains a line break", ErrInvalidVariable, name)
		}
		fmt.Fprintf(&b, "%s=\"%s\"\n", KeyFor(name), value)
	}

	return b.Bytes(), nil
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return v
}
