package driver

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
)

// Frame describes the period being rendered.
type Frame struct {
	Tick   uint64
	Time   time.Time
	Uptime time.Duration
}

// Up formats the uptime as h:mm:ss.
func (f Frame) Up() string {
	s := int64(f.Uptime / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}

// Content produces the text of each row for a frame. Row i of the result goes
// to display row i; extra rows are ignored.
type Content interface {
	Lines(f Frame) []string
}

// ContentFunc adapts a function to Content.
type ContentFunc func(f Frame) []string

func (fn ContentFunc) Lines(f Frame) []string {
	return fn(f)
}

// Static always shows the same rows.
type Static []string

func (s Static) Lines(Frame) []string {
	return s
}

// TemplateContent renders one text/template per row with the Frame as data,
// e.g. `{{.Time.Format "15:04:05"}}` or `up {{.Up}}`.
type TemplateContent struct {
	rows []*template.Template
}

func NewTemplateContent(rows []string) (*TemplateContent, error) {
	c := &TemplateContent{}
	for i, r := range rows {
		tmpl, err := template.New(fmt.Sprintf("row%d", i)).Parse(r)
		if err != nil {
			return nil, errors.Annotatef(err, "row %d", i)
		}
		c.rows = append(c.rows, tmpl)
	}
	return c, nil
}

func (c *TemplateContent) Lines(f Frame) []string {
	lines := make([]string, len(c.rows))
	for i, tmpl := range c.rows {
		var sb strings.Builder
		if err := tmpl.Execute(&sb, f); err != nil {
			log.Warnf("Unable to render row %d: %v", i, err)
			continue
		}
		lines[i] = sb.String()
	}
	return lines
}
