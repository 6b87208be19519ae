package rendering

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-parser/internal/types"
)

//go:embed templates/default.html.tmpl
var defaultHTMLTemplate string

//go:embed templates/default.css
var defaultCSS string

var templateFuncs = template.FuncMap{
	"lines": splitLines,
	"join":  strings.Join,
	"upper": strings.ToUpper,
}

// DefaultTemplate returns the built-in HTML template and stylesheet
func DefaultTemplate() types.Template {
	return types.Template{HTML: defaultHTMLTemplate, CSS: defaultCSS}
}

// RenderHTML renders a record as a standalone HTML document. An empty template HTML selects the
// built-in template, and the built-in stylesheet when no CSS is given either. CSS is injected as a
// <style> element at the end of <head>.
func RenderHTML(record *types.ParsedResumeRecord, tmpl types.Template) ([]byte, error) {
	source, css := tmpl.HTML, tmpl.CSS
	if strings.TrimSpace(source) == "" {
		source = defaultHTMLTemplate
		if strings.TrimSpace(css) == "" {
			css = defaultCSS
		}
	}

	t, err := parseTemplate(source)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, BuildView(record)); err != nil {
		return nil, &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	if strings.TrimSpace(css) == "" {
		return buf.Bytes(), nil
	}
	return injectCSS(buf.Bytes(), css)
}

// parseTemplate parses an HTML template source with the rendering helper functions
func parseTemplate(source string) (*template.Template, error) {
	t, err := template.New("resume").Funcs(templateFuncs).Parse(source)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return t, nil
}

// injectCSS appends a <style> element to the document head, creating the head if the template
// omitted it
func injectCSS(document []byte, css string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(document))
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse rendered HTML", Cause: err}
	}

	// A closing tag sequence inside the stylesheet would end the element early.
	css = strings.ReplaceAll(css, "</", `<\/`)
	doc.Find("head").First().AppendHtml("<style>\n" + css + "\n</style>")

	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return nil, &TemplateError{Message: "failed to serialize HTML", Cause: err}
	}
	return []byte(out), nil
}
