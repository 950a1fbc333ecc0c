package recast

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompt_templates.yaml
var promptTemplatesYAML []byte

// promptTemplates is loaded once at process start and read-only afterwards,
// so pipeline goroutines need no synchronization around it.
var promptTemplates = mustLoadTemplates(promptTemplatesYAML)

var placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)

func mustLoadTemplates(raw []byte) map[string]string {
	var out map[string]string
	if err := yaml.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("recast: parse prompt_templates.yaml: %v", err))
	}
	for name, text := range out {
		if strings.TrimSpace(text) == "" {
			panic(fmt.Sprintf("recast: prompt template %q is empty", name))
		}
	}
	return out
}

// renderTemplate resolves a named prompt template by substituting every
// {placeholder} with the supplied value. Unknown template names and
// placeholders without a value are errors; substituted values are free to
// contain braces of their own.
func renderTemplate(name string, vars map[string]string) (string, error) {
	tmpl, ok := promptTemplates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt template: %s", name)
	}
	for _, ph := range placeholderPattern.FindAllString(tmpl, -1) {
		key := strings.Trim(ph, "{}")
		if _, ok := vars[key]; !ok {
			return "", fmt.Errorf("prompt template %s: no value for placeholder %s", name, ph)
		}
	}
	out := tmpl
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out, nil
}
