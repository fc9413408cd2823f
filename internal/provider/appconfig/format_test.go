package appconfig

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Format
	}{
		{"config.toml", FormatTOML},
		{"pyproject.TOML", FormatTOML},
		{"setup.cfg", FormatINI},
		{"app.ini", FormatINI},
		{".env", FormatDotenv},
		{"production.env", FormatDotenv},
		{"settings.yaml", FormatYAML},
		{"conf/settings.yml", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, err := DetectFormat(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DetectFormat("settings.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSet_TOML(t *testing.T) {
	t.Parallel()

	input := []byte("title = \"reporting\"\n\n[project]\nregion = \"eu\"\n")

	out, changed, err := Set(FormatTOML, input, "project.id", "acme-prod")
	require.NoError(t, err)
	assert.True(t, changed)

	var doc map[string]any
	require.NoError(t, toml.Unmarshal(out, &doc))
	assert.Equal(t, "reporting", doc["title"])
	project := doc["project"].(map[string]any)
	assert.Equal(t, "acme-prod", project["id"])
	assert.Equal(t, "eu", project["region"])

	again, changed, err := Set(FormatTOML, out, "project.id", "acme-prod")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, out, again)
}

func TestSet_TOML_NotATable(t *testing.T) {
	t.Parallel()

	_, _, err := Set(FormatTOML, []byte("project = \"x\"\n"), "project.id", "acme")

	assert.ErrorIs(t, err, ErrNotATable)
}

func TestSet_INI(t *testing.T) {
	t.Parallel()

	input := []byte("[server]\nport = 8080\n")

	out, changed, err := Set(FormatINI, input, "gcp.project", "acme-prod")
	require.NoError(t, err)
	assert.True(t, changed)

	file, err := ini.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "8080", file.Section("server").Key("port").String())
	assert.Equal(t, "acme-prod", file.Section("gcp").Key("project").String())
}

func TestSet_INI_TopLevelKey(t *testing.T) {
	t.Parallel()

	out, changed, err := Set(FormatINI, nil, "project", "acme-prod")
	require.NoError(t, err)
	assert.True(t, changed)

	file, err := ini.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "acme-prod", file.Section("").Key("project").String())
}

func TestSet_Dotenv(t *testing.T) {
	t.Parallel()

	input := []byte("DEBUG=1\nGOOGLE_CLOUD_PROJECT=old\n")

	out, changed, err := Set(FormatDotenv, input, "GOOGLE_CLOUD_PROJECT", "acme-prod")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "DEBUG=1\nGOOGLE_CLOUD_PROJECT=acme-prod\n", string(out))

	again, changed, err := Set(FormatDotenv, out, "GOOGLE_CLOUD_PROJECT", "acme-prod")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, out, again)
}

func TestSet_Dotenv_PlainLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		value string
		want  string
	}{
		{
			name:  "appends without aligning existing keys",
			input: "PORT=8000\nPASSWORD=x\n",
			value: "my-proj",
			want:  "PORT=8000\nPASSWORD=x\nGOOGLE_CLOUD_PROJECT=my-proj\n",
		},
		{
			name:  "creates a missing file",
			input: "",
			value: "my-proj",
			want:  "GOOGLE_CLOUD_PROJECT=my-proj\n",
		},
		{
			name:  "keeps comments",
			input: "# local settings\nPORT=8000\n",
			value: "my-proj",
			want:  "# local settings\nPORT=8000\nGOOGLE_CLOUD_PROJECT=my-proj\n",
		},
		{
			name:  "quotes values with spaces",
			input: "PORT=8000\n",
			value: "my proj",
			want:  "PORT=8000\nGOOGLE_CLOUD_PROJECT=\"my proj\"\n",
		},
		{
			name:  "keeps comment markers inside the value",
			input: "",
			value: "acme#prod;eu",
			want:  "GOOGLE_CLOUD_PROJECT=`acme#prod;eu`\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, changed, err := Set(FormatDotenv, []byte(tt.input), "GOOGLE_CLOUD_PROJECT", tt.value)
			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, tt.want, string(out))

			file, err := ini.Load(out)
			require.NoError(t, err)
			assert.Equal(t, tt.value, file.Section("").Key("GOOGLE_CLOUD_PROJECT").String())
		})
	}
}

func TestSet_YAML_KeepsComments(t *testing.T) {
	t.Parallel()

	input := []byte("# service settings\nservice:\n  name: reporting # display name\n  project: old\n")

	out, changed, err := Set(FormatYAML, input, "service.project", "12345")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, string(out), "# service settings")
	assert.Contains(t, string(out), "# display name")

	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "12345", doc["service"]["project"], "numeric ids stay strings")
	assert.Equal(t, "reporting", doc["service"]["name"])
}

func TestSet_YAML_CreatesNestedKeys(t *testing.T) {
	t.Parallel()

	out, changed, err := Set(FormatYAML, nil, "gcp.project.id", "acme-prod")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "gcp:\n  project:\n    id: acme-prod\n", string(out))

	again, changed, err := Set(FormatYAML, out, "gcp.project.id", "acme-prod")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, out, again)
}

func TestSet_YAML_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := Set(FormatYAML, []byte("- a\n- b\n"), "project", "x")
	assert.ErrorIs(t, err, ErrNotATable)

	_, _, err = Set(FormatYAML, []byte("project: x\n"), "project.id", "x")
	assert.ErrorIs(t, err, ErrNotATable)

	_, _, err = Set(FormatYAML, []byte("a: [\n"), "project", "x")
	assert.Error(t, err)
}
