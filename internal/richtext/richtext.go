// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package richtext turns catalog descriptions and biographies into safe HTML
// for the web front and plain text for the terminal browser.
package richtext

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer holds the markdown engine and the sanitizing policies. It is safe
// for concurrent use.
type Renderer struct {
	engine      goldmark.Markdown
	htmlPolicy  *bluemonday.Policy
	stripPolicy *bluemonday.Policy
}

// New creates a [Renderer]. Line breaks inside a paragraph are kept, as
// authors write biographies line by line.
func New() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(goldhtml.WithHardWraps(), goldhtml.WithUnsafe()),
		),
		htmlPolicy:  bluemonday.UGCPolicy(),
		stripPolicy: bluemonday.StripTagsPolicy(),
	}
}

// HTML renders text as markdown and sanitizes the result. Inline HTML allowed
// by the policy survives; disallowed elements are removed before parsing so
// the markdown after them on the same line is still rendered.
func (r *Renderer) HTML(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(r.htmlPolicy.Sanitize(text)), &buf); err != nil {
		return "", fmt.Errorf("richtext: render: %w", err)
	}

	return strings.TrimSpace(string(r.htmlPolicy.SanitizeBytes(buf.Bytes()))), nil
}

// Plain removes any markup from text, markdown emphasis included, and decodes
// entities.
func (r *Renderer) Plain(text string) string {
	plain := r.stripPolicy.Sanitize(text)

	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(plain), &buf); err == nil {
		plain = r.stripPolicy.Sanitize(buf.String())
	}

	return strings.TrimSpace(html.UnescapeString(plain))
}
