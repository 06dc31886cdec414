package planner

import (
	"regexp"
	"strings"

	"ai-resume-be/pkg/document"
)

// Transform is a pure, idempotent edit scoped to one recognized structural
// element. It must never touch characters outside its target.
type Transform func(document.Document) document.Document

var (
	boldWrapped   = regexp.MustCompile(`^\*\*(.+)\*\*$`)
	italicWrapped = regexp.MustCompile(`^\*([^*].*[^*]|[^*])\*$`)
	blankRun      = regexp.MustCompile(`\n{4,}`)
	colorTag      = regexp.MustCompile(`\s*<!--color:[a-z]+-->$`)
)

// BoldNameLine wraps the name line's text in bold markers exactly once.
// Applying it to an already-bold name is a no-op.
func BoldNameLine(doc document.Document) document.Document {
	return mapNameLine(doc, func(name string) string {
		if boldWrapped.MatchString(name) {
			return name
		}
		return "**" + strings.Trim(name, "*") + "**"
	})
}

// ItalicNameLine wraps the name line's text in italic markers exactly once.
func ItalicNameLine(doc document.Document) document.Document {
	return mapNameLine(doc, func(name string) string {
		if italicWrapped.MatchString(name) || boldWrapped.MatchString(name) {
			return name
		}
		return "*" + name + "*"
	})
}

func mapNameLine(doc document.Document, fn func(string) string) document.Document {
	idx := doc.BuildIndex()
	if idx.NameLine == -1 {
		return doc
	}
	lines := doc.Lines()
	name := strings.TrimSpace(strings.TrimPrefix(lines[idx.NameLine], "# "))
	lines[idx.NameLine] = "# " + fn(name)
	return document.New(strings.Join(lines, "\n"))
}

// ColorHeadings annotates every section heading with a color tag the
// renderers understand. Re-coloring replaces the previous tag.
func ColorHeadings(color string) Transform {
	return func(doc document.Document) document.Document {
		lines := doc.Lines()
		for i, line := range lines {
			if !document.IsHeadingLine(line) {
				continue
			}
			stripped := colorTag.ReplaceAllString(line, "")
			lines[i] = stripped + " <!--color:" + color + "-->"
		}
		return document.New(strings.Join(lines, "\n"))
	}
}

// CollapseBlankLines reduces any run of three or more blank lines to exactly
// one. Everything else is untouched.
func CollapseBlankLines(doc document.Document) document.Document {
	return document.New(blankRun.ReplaceAllString(doc.Text(), "\n\n"))
}

// TightenSectionSpacing removes the blank line between a section's last line
// and the next heading, after collapsing oversized blank runs.
func TightenSectionSpacing(doc document.Document) document.Document {
	text := blankRun.ReplaceAllString(doc.Text(), "\n\n")
	text = strings.ReplaceAll(text, "\n\n## ", "\n## ")
	return document.New(text)
}

// EnsureSectionBreaks guarantees exactly one blank line before each section
// heading. Already well-spaced documents pass through unchanged.
func EnsureSectionBreaks(doc document.Document) document.Document {
	lines := doc.Lines()
	out := make([]string, 0, len(lines)+4)
	for i, line := range lines {
		if document.IsHeadingLine(line) && i > 0 {
			// Drop accumulated trailing blanks, then insert a single one.
			for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
				out = out[:len(out)-1]
			}
			out = append(out, "")
		}
		out = append(out, line)
	}
	return document.New(strings.Join(out, "\n"))
}

// CompactContactLines merges the contact-detail run under the name line into
// a single line joined by " | ".
func CompactContactLines(doc document.Document) document.Document {
	idx := doc.BuildIndex()
	if idx.ContactStart == -1 || idx.ContactStart == idx.ContactEnd {
		return doc
	}
	lines := doc.Lines()
	parts := make([]string, 0, idx.ContactEnd-idx.ContactStart+1)
	for i := idx.ContactStart; i <= idx.ContactEnd; i++ {
		parts = append(parts, strings.TrimSpace(lines[i]))
	}
	merged := strings.Join(parts, " | ")

	out := make([]string, 0, len(lines))
	out = append(out, lines[:idx.ContactStart]...)
	out = append(out, merged)
	out = append(out, lines[idx.ContactEnd+1:]...)
	return document.New(strings.Join(out, "\n"))
}

// knownColors maps color vocabulary to the canonical tag value.
var knownColors = []string{"blue", "navy", "green", "red", "black", "gray"}

func detectColor(lower string) string {
	for _, c := range knownColors {
		if strings.Contains(lower, c) {
			return c
		}
	}
	return ""
}
