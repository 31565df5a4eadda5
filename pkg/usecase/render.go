package usecase

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/relwatch/pkg/domain/model"
)

// placeholderPtn matches $$, $name and ${name}. The name charset is fixed,
// so a template can never reach anything outside the provided variables.
var placeholderPtn = regexp.MustCompile(`\$(?:(\$)|([A-Za-z_][A-Za-z0-9_]*)|\{([A-Za-z_][A-Za-z0-9_]*)\})`)

// RenderContent expands $name and ${name} placeholders from vars. Unknown
// placeholders stay as literal text and $$ collapses to a single $, so a
// malformed template can never fail the pass.
func RenderContent(tmpl string, vars map[string]string) string {
	return placeholderPtn.ReplaceAllStringFunc(tmpl, func(m string) string {
		sub := placeholderPtn.FindStringSubmatch(m)
		if sub[1] != "" {
			return "$"
		}
		name := sub[2]
		if name == "" {
			name = sub[3]
		}
		if v, ok := vars[name]; ok {
			return v
		}
		return m
	})
}

// EscapeJSON encodes s as a JSON string literal and strips the enclosing
// quotes, so the value can be embedded inside a JSON payload template
// without breaking the surrounding syntax. Non-ASCII text stays literal.
func EscapeJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a plain string cannot fail.
	_ = enc.Encode(s)

	out := strings.TrimSuffix(buf.String(), "\n")
	return out[1 : len(out)-1]
}

// ContentVars builds the closed variable set available to webhook content
// templates. name and body are JSON-escaped since they carry arbitrary
// upstream text; the rest are structurally safe.
func ContentVars(repoID string, snap *model.ReleaseSnapshot, tz *time.Location) map[string]string {
	return map[string]string{
		"repo_name":    repoID,
		"id":           strconv.FormatInt(snap.ID, 10),
		"html_url":     snap.HTMLURL,
		"tag_name":     snap.TagName,
		"name":         EscapeJSON(snap.Name),
		"published_at": snap.PublishedAt.In(tz).Format(time.RFC3339),
		"body":         EscapeJSON(snap.Body),
	}
}
