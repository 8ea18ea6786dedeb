package bot

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed assets/templates.yaml
var defaultTemplates []byte

// Templates is the bot's user-facing copy, overridable from a YAML file so
// deployments can reword messages without a rebuild.
type Templates struct {
	Verify struct {
		Trigger     string `yaml:"trigger"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		ButtonLabel string `yaml:"button_label"`
		Color       int    `yaml:"color"`
	} `yaml:"verify"`

	Link struct {
		Message     string `yaml:"message"`
		ButtonLabel string `yaml:"button_label"`
	} `yaml:"link"`

	Errors struct {
		IssueFailed string `yaml:"issue_failed"`
		GuildOnly   string `yaml:"guild_only"`
	} `yaml:"errors"`
}

// LoadTemplates parses the built-in copy, then merges the override file on
// top when one is configured. Empty override fields keep their defaults.
func LoadTemplates(filePath string) (*Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(defaultTemplates, &t); err != nil {
		return nil, fmt.Errorf("failed to parse built-in templates: %w", err)
	}

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read templates file: %w", err)
		}
		var override Templates
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to parse templates yaml: %w", err)
		}
		t.merge(override)
	}

	if t.Verify.Trigger == "" {
		return nil, fmt.Errorf("templates: verify trigger must not be empty")
	}
	return &t, nil
}

func (t *Templates) merge(o Templates) {
	setIf(&t.Verify.Trigger, o.Verify.Trigger)
	setIf(&t.Verify.Title, o.Verify.Title)
	setIf(&t.Verify.Description, o.Verify.Description)
	setIf(&t.Verify.ButtonLabel, o.Verify.ButtonLabel)
	if o.Verify.Color != 0 {
		t.Verify.Color = o.Verify.Color
	}
	setIf(&t.Link.Message, o.Link.Message)
	setIf(&t.Link.ButtonLabel, o.Link.ButtonLabel)
	setIf(&t.Errors.IssueFailed, o.Errors.IssueFailed)
	setIf(&t.Errors.GuildOnly, o.Errors.GuildOnly)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Expand substitutes the {community}, {user} and {minutes} placeholders.
func Expand(tmpl, community, user string, minutes int) string {
	r := strings.NewReplacer(
		"{community}", community,
		"{user}", user,
		"{minutes}", strconv.Itoa(minutes),
	)
	return r.Replace(tmpl)
}
