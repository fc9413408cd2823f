// Package appconfig writes the resolved project id into the application's
// own settings file, whatever format that file uses.
package appconfig

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Format identifies a settings file syntax.
type Format string

// Supported formats.
const (
	FormatTOML   Format = "toml"
	FormatINI    Format = "ini"
	FormatDotenv Format = "dotenv"
	FormatYAML   Format = "yaml"
)

// Errors returned while editing a settings file.
var (
	ErrUnsupportedFormat = errors.New("unsupported settings file format")
	ErrNotATable         = errors.New("key path crosses a non-table value")
)

// DetectFormat picks the format from the file name.
func DetectFormat(path string) (Format, error) {
	base := strings.ToLower(filepath.Base(path))
	if base == ".env" || strings.HasSuffix(base, ".env") {
		return FormatDotenv, nil
	}
	switch filepath.Ext(base) {
	case ".toml":
		return FormatTOML, nil
	case ".ini", ".cfg":
		return FormatINI, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Set returns data with the dotted key set to value. When the key already
// holds value the input is returned unchanged, byte for byte.
func Set(format Format, data []byte, key, value string) ([]byte, bool, error) {
	switch format {
	case FormatTOML:
		return setTOML(data, strings.Split(key, "."), value)
	case FormatINI:
		return setINI(data, strings.Split(key, "."), value)
	case FormatDotenv:
		return setDotenv(data, key, value)
	case FormatYAML:
		return setYAML(data, strings.Split(key, "."), value)
	}
	return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func setTOML(data []byte, path []string, value string) ([]byte, bool, error) {
	doc := map[string]any{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, false, fmt.Errorf("failed to parse toml: %w", err)
		}
	}

	table := doc
	for i, seg := range path[:len(path)-1] {
		next, ok := table[seg]
		if !ok {
			child := map[string]any{}
			table[seg] = child
			table = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil, false, fmt.Errorf("%w: %s", ErrNotATable, strings.Join(path[:i+1], "."))
		}
		table = child
	}

	last := path[len(path)-1]
	if current, ok := table[last].(string); ok && current == value {
		return data, false, nil
	}
	table[last] = value

	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode toml: %w", err)
	}
	return out, true, nil
}

func setINI(data []byte, path []string, value string) ([]byte, bool, error) {
	file := ini.Empty()
	if len(bytes.TrimSpace(data)) > 0 {
		loaded, err := ini.Load(data)
		if err != nil {
			return nil, false, fmt.Errorf("failed to parse ini: %w", err)
		}
		file = loaded
	}

	sectionName := ini.DefaultSection
	keyName := path[len(path)-1]
	if len(path) > 1 {
		sectionName = strings.Join(path[:len(path)-1], ".")
	}

	section := file.Section(sectionName)
	if section.HasKey(keyName) && section.Key(keyName).String() == value {
		return data, false, nil
	}
	section.Key(keyName).SetValue(value)

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, false, fmt.Errorf("failed to encode ini: %w", err)
	}
	return buf.Bytes(), true, nil
}

// setDotenv edits a .env file through ini.v1 but writes it back as plain
// KEY=value lines, the form shells and docker --env-file read.
func setDotenv(data []byte, key, value string) ([]byte, bool, error) {
	file := ini.Empty()
	if len(bytes.TrimSpace(data)) > 0 {
		loaded, err := ini.Load(data)
		if err != nil {
			return nil, false, fmt.Errorf("failed to parse env file: %w", err)
		}
		file = loaded
	}

	section := file.Section(ini.DefaultSection)
	if section.HasKey(key) && section.Key(key).String() == value {
		return data, false, nil
	}
	section.Key(key).SetValue(value)

	var buf bytes.Buffer
	for _, s := range file.Sections() {
		for _, k := range s.Keys() {
			writeDotenvComment(&buf, k.Comment)
			fmt.Fprintf(&buf, "%s=%s\n", k.Name(), dotenvQuote(k.Value()))
		}
	}
	return buf.Bytes(), true, nil
}

func writeDotenvComment(buf *bytes.Buffer, comment string) {
	if comment == "" {
		return
	}
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, ";") {
			line = "# " + line
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// dotenvQuote quotes values the env file reader would otherwise trim or
// cut at a comment marker. The reader strips comments before it removes
// double quotes, so values holding '#', ';' or '"' use backticks.
func dotenvQuote(v string) string {
	switch {
	case !strings.ContainsAny(v, " \t#;'\"=`"):
		return v
	case !strings.ContainsAny(v, "#;\""):
		return `"` + v + `"`
	case !strings.Contains(v, "`"):
		return "`" + v + "`"
	default:
		return `"""` + v + `"""`
	}
}

func setYAML(data []byte, path []string, value string) ([]byte, bool, error) {
	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, false, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}

	node := doc.Content[0]
	if node.Kind != yaml.MappingNode {
		return nil, false, fmt.Errorf("%w: document root", ErrNotATable)
	}

	for i, seg := range path[:len(path)-1] {
		child := mappingValue(node, seg)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, scalar(seg), child)
		} else if child.Kind != yaml.MappingNode {
			return nil, false, fmt.Errorf("%w: %s", ErrNotATable, strings.Join(path[:i+1], "."))
		}
		node = child
	}

	last := path[len(path)-1]
	leaf := mappingValue(node, last)
	switch {
	case leaf == nil:
		node.Content = append(node.Content, scalar(last), scalar(value))
	case leaf.Kind == yaml.ScalarNode && leaf.Value == value:
		return data, false, nil
	default:
		leaf.Kind = yaml.ScalarNode
		leaf.Tag = "!!str"
		leaf.Value = value
		leaf.Style = 0
		leaf.Content = nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, false, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, false, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), true, nil
}

// mappingValue returns the value node stored under key, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
