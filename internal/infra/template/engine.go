package template

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"unicode/utf8"

	"respush/internal/domain/catalog"
	"respush/internal/domain/push"
)

var _ push.Renderer = (*Engine)(nil)

// MaxMessageRunes caps a message below the group robot's per-message limit.
const MaxMessageRunes = 4000

// Footer closes every sampled message.
const Footer = "💡 需要其他资源可联系我，更多资料可在该网站搜索：https://dcn8qexvg13r.feishu.cn/wiki/OAS1wpySSiedCDkgnjycCza8nFf?table=tblgsMxc3clOlIc5&view=vewQ1AKJ0D"

//go:embed templates/*.tmpl
var templatesFS embed.FS

// messageData is the template context for one resource type.
type messageData struct {
	Type   string
	Total  int
	Items  []catalog.Item
	Footer string
}

// Engine renders push messages using Go's text/template package.
type Engine struct {
	templates *template.Template
	maxRunes  int
}

// NewEngine parses the embedded message templates. maxRunes <= 0 selects MaxMessageRunes.
func NewEngine(maxRunes int) (*Engine, error) {
	if maxRunes <= 0 {
		maxRunes = MaxMessageRunes
	}

	tmpl, err := template.New("message").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing message templates: %w", err)
	}

	return &Engine{templates: tmpl, maxRunes: maxRunes}, nil
}

// Render produces the message text for one resource type, truncated to the rune cap.
func (e *Engine) Render(resType string, total int, picked []catalog.Item) (string, error) {
	name := "sample"
	if total == 0 {
		name = "empty"
	}

	var buf bytes.Buffer
	data := messageData{Type: resType, Total: total, Items: picked, Footer: Footer}
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return truncate(buf.String(), e.maxRunes), nil
}

// truncate cuts s to at most max runes, keeping the prefix.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
