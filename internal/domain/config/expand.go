package config

import (
	"os"
	"strings"
)

// Expand replaces ${NAME} references in args with values from vars.
// Unknown references are left in place.
func Expand(args []string, vars map[string]string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = os.Expand(arg, func(name string) string {
			if v, ok := vars[name]; ok {
				return v
			}
			return "${" + name + "}"
		})
	}
	return out
}

// VariableName maps a saved variable name to the name used in ${...}
// references: project_id becomes PROJECT_ID.
func VariableName(name string) string {
	return strings.ToUpper(name)
}
