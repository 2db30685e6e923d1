package newsletter

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

// Item is one scholarship in the digest.
type Item struct {
	Title    string
	URL      string
	Country  string
	Provider string
	Deadline string // YYYY-MM-DD, empty when none
	DaysLeft int
	Excerpt  string
	Views    int
}

// Data is the input of the digest template.
type Data struct {
	Title      string
	Slug       string
	Datetime   string
	Summary    string
	Preface    string
	Postscript string
	SiteURL    string
	Items      []Item
}

//go:embed newsletter.tmpl
var newsletterTpl string

var compiled = template.Must(template.New("newsletter").Funcs(template.FuncMap{
	"yamlString": yamlString,
	"inc":        func(i int) int { return i + 1 },
}).Parse(newsletterTpl))

func Render(d Data) (string, error) {
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// yamlString quotes s for a frontmatter value.
func yamlString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return `"` + s + `"`
}
