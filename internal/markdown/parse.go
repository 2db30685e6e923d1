package markdown

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Document represents a Markdown file with YAML frontmatter.
type Document struct {
	Frontmatter map[string]any
	Body        string

	raw []byte
}

// ParseFile reads a Markdown file and extracts YAML frontmatter and body.
func ParseFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse extracts YAML frontmatter and body from r.
// Frontmatter is expected at the top between two lines containing only "---".
func Parse(r io.Reader) (Document, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return Document{}, err
	}
	hasFM := string(peek) == "---"
	var fmBuf strings.Builder
	var bodyBuf strings.Builder

	if hasFM {
		// opening '---'
		if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, err
		}
		for {
			l, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return Document{}, err
			}
			if strings.TrimSpace(l) == "---" {
				break
			}
			fmBuf.WriteString(l)
			if errors.Is(err, io.EOF) {
				break
			}
		}
	}
	for {
		l, err := br.ReadString('\n')
		bodyBuf.WriteString(l)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, err
		}
	}

	d := Document{
		Frontmatter: map[string]any{},
		Body:        bodyBuf.String(),
	}
	if hasFM {
		d.raw = []byte(fmBuf.String())
		m := map[string]any{}
		if err := yaml.Unmarshal(d.raw, &m); err != nil {
			return Document{}, err
		}
		d.Frontmatter = m
	}
	return d, nil
}

// Decode unmarshals the frontmatter into v.
func (d Document) Decode(v any) error {
	if len(d.raw) == 0 {
		return nil
	}
	return yaml.Unmarshal(d.raw, v)
}

var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the body to HTML, the format the CMS editor stores.
func (d Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(d.Body), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
