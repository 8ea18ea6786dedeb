package bot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTemplatesDefaults(t *testing.T) {
	tmpl, err := LoadTemplates("")
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if tmpl.Verify.Trigger != "!verify" {
		t.Errorf("trigger = %q", tmpl.Verify.Trigger)
	}
	if tmpl.Link.ButtonLabel == "" || tmpl.Errors.IssueFailed == "" {
		t.Errorf("defaults incomplete: %+v", tmpl)
	}
	if tmpl.Verify.Color == 0 {
		t.Error("default embed color missing")
	}
}

func TestLoadTemplatesOverrideMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	override := `verify:
  trigger: "!connect"
link:
  button_label: "Open link"
`
	if err := os.WriteFile(path, []byte(override), 0o600); err != nil {
		t.Fatal(err)
	}

	tmpl, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if tmpl.Verify.Trigger != "!connect" {
		t.Errorf("trigger = %q, want override", tmpl.Verify.Trigger)
	}
	if tmpl.Link.ButtonLabel != "Open link" {
		t.Errorf("button label = %q, want override", tmpl.Link.ButtonLabel)
	}
	// Untouched fields keep their defaults.
	if tmpl.Verify.Title == "" || tmpl.Errors.GuildOnly == "" {
		t.Errorf("defaults lost in merge: %+v", tmpl)
	}
}

func TestLoadTemplatesMissingFile(t *testing.T) {
	if _, err := LoadTemplates("/nonexistent/templates.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadTemplatesBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("verify: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTemplates(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestExpand(t *testing.T) {
	got := Expand("Hi {user}, welcome to {community}. Link valid {minutes} min.", "Example", "somebody", 6)
	want := "Hi somebody, welcome to Example. Link valid 6 min."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
