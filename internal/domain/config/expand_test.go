package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"PROJECT_ID":  "acme-prod",
		"VENV_PYTHON": "/ws/.venv/bin/python",
	}

	got := Expand([]string{"${VENV_PYTHON}", "main.py", "--project=${PROJECT_ID}", "${UNKNOWN}"}, vars)

	assert.Equal(t, []string{"/ws/.venv/bin/python", "main.py", "--project=acme-prod", "${UNKNOWN}"}, got)
}

func TestVariableName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PROJECT_ID", VariableName("project_id"))
}
