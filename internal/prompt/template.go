package prompt

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateFile is the on-disk format for a user-supplied commit prompt
// template. The template body receives the same Data as the built-in
// one ({{.Language}}, {{.Diff}}).
type TemplateFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
}

// LoadTemplate reads a template override from path. A plain text file
// (one that does not parse as the YAML wrapper) is accepted as the
// template body itself.
func LoadTemplate(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read template file %s: %w", path, err)
	}

	var tf TemplateFile
	if err := yaml.Unmarshal(content, &tf); err != nil || tf.Template == "" {
		return string(content), nil
	}
	if !strings.Contains(tf.Template, "{{.Diff}}") {
		return "", fmt.Errorf("template file %s does not reference {{.Diff}}", path)
	}
	return tf.Template, nil
}
