package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ajdsjdasjh123sd/linkgate/internal/payload"
)

//go:embed assets/landing.html
var defaultLanding string

//go:embed assets/expired.html
var defaultExpired string

//go:embed assets/inject.js
var injectScript string

// Renderer produces the landing and expired pages. Templates come from
// configured files when set, embedded defaults otherwise. The landing page
// gets the decoded payload injected as an inline script plus the client
// script that populates the page and re-checks expiry in the browser.
type Renderer struct {
	landingFile string
	expiredFile string
}

// New creates a renderer. Empty paths select the embedded templates.
func New(landingFile, expiredFile string) *Renderer {
	return &Renderer{
		landingFile: landingFile,
		expiredFile: expiredFile,
	}
}

// Landing renders the personalized page. A nil payload renders default
// content: decode failures are "unpersonalized", never an error.
func (r *Renderer) Landing(p *payload.Payload) ([]byte, error) {
	html, err := r.template(r.landingFile, defaultLanding)
	if err != nil {
		return nil, fmt.Errorf("load landing template: %w", err)
	}

	tag, err := payloadScriptTag(p)
	if err != nil {
		return nil, fmt.Errorf("serialize payload: %w", err)
	}

	return []byte(inject(html, tag+"\n"+injectScript)), nil
}

// Expired renders the expired page. The fallback bool is false when no
// template could be loaded; callers then serve plain text instead.
func (r *Renderer) Expired() ([]byte, bool) {
	html, err := r.template(r.expiredFile, defaultExpired)
	if err != nil {
		return nil, false
	}
	return []byte(html), true
}

func (r *Renderer) template(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// payloadScriptTag serializes the payload for inline script injection.
// encoding/json escapes <, > and & by default, which is exactly what keeps
// the inline script safe against payload-controlled content.
func payloadScriptTag(p *payload.Payload) (string, error) {
	serialized := []byte("null")
	if p != nil {
		var err error
		serialized, err = json.Marshal(p)
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprintf(`<script id="link-payload-data">window.__LINK_PAYLOAD__ = %s;</script>`, serialized), nil
}

// inject places block before </body>, falling back to </html>, then append.
func inject(html, block string) string {
	if idx := strings.LastIndex(html, "</body>"); idx != -1 {
		return html[:idx] + block + "\n" + html[idx:]
	}
	if idx := strings.LastIndex(html, "</html>"); idx != -1 {
		return html[:idx] + block + "\n" + html[idx:]
	}
	return html + "\n" + block
}
