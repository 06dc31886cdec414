package document

import (
	"regexp"
	"strings"
)

// Document is the session's current resume text in the assistant's markdown
// dialect: one "# " name line, "## " section headings, "-"/"•"/"*" bullets,
// emphasis-wrapped title lines and free paragraphs. The value is immutable;
// transforms produce a new Document.
type Document struct {
	text string
}

func New(text string) Document {
	return Document{text: text}
}

func (d Document) Text() string {
	return d.text
}

func (d Document) Lines() []string {
	return strings.Split(d.text, "\n")
}

func (d Document) IsEmpty() bool {
	return strings.TrimSpace(d.text) == ""
}

// Index holds the structural positions a targeted transform may address.
// Line numbers are zero-based; -1 means the element is absent.
type Index struct {
	NameLine     int
	HeadingLines []int
	BulletLines  []int

	// ContactStart/ContactEnd bound the run of contact-detail lines that
	// follows the name line (emails, phone numbers, profile links).
	ContactStart int
	ContactEnd   int
}

var bulletPrefix = regexp.MustCompile(`^[\s]*[-•*]\s+`)

func IsNameLine(line string) bool {
	return strings.HasPrefix(line, "# ") && !strings.HasPrefix(line, "## ")
}

func IsHeadingLine(line string) bool {
	return strings.HasPrefix(line, "## ")
}

func IsBulletLine(line string) bool {
	return bulletPrefix.MatchString(line)
}

// IsContactLine reports whether a line looks like a contact detail: not a
// heading, and carrying an email, a phone number or a profile link.
func IsContactLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}
	lower := strings.ToLower(trimmed)
	return strings.Contains(trimmed, "@") ||
		strings.Contains(lower, "linkedin") ||
		strings.Contains(lower, "github.com") ||
		strings.Contains(trimmed, "(")
}

// BuildIndex scans the document once and records structural positions.
func (d Document) BuildIndex() Index {
	idx := Index{NameLine: -1, ContactStart: -1, ContactEnd: -1}

	lines := d.Lines()
	for i, line := range lines {
		switch {
		case IsHeadingLine(line):
			idx.HeadingLines = append(idx.HeadingLines, i)
		case idx.NameLine == -1 && IsNameLine(line):
			idx.NameLine = i
		case IsBulletLine(line):
			idx.BulletLines = append(idx.BulletLines, i)
		}
	}

	// The contact run is the first block of contact lines before any section
	// heading. It ends at the first blank or non-contact line.
	limit := len(lines)
	if len(idx.HeadingLines) > 0 {
		limit = idx.HeadingLines[0]
	}
	for i := idx.NameLine + 1; i >= 0 && i < limit; i++ {
		if IsContactLine(lines[i]) {
			if idx.ContactStart == -1 {
				idx.ContactStart = i
			}
			idx.ContactEnd = i
		} else if idx.ContactStart != -1 {
			break
		}
	}

	return idx
}

var (
	annotationTag  = regexp.MustCompile(`<!--[^>]*-->`)
	markupStripper = strings.NewReplacer(
		"**", " ",
		"*", " ",
		"`", " ",
		"|", " ",
		"_", " ",
	)
)

// WordCount counts content words, excluding structural markup: heading and
// bullet markers, emphasis wrappers, table pipes, rules and annotation tags.
// The planner's integrity check compares this number before and after a
// transform, so markup added by a style edit must never move it.
func WordCount(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" || isTableRule(trimmed) {
			continue
		}
		trimmed = strings.TrimLeft(trimmed, "# ")
		trimmed = bulletPrefix.ReplaceAllString(trimmed, "")
		trimmed = annotationTag.ReplaceAllString(trimmed, " ")
		trimmed = markupStripper.Replace(trimmed)
		count += len(strings.Fields(trimmed))
	}
	return count
}

func (d Document) WordCount() int {
	return WordCount(d.text)
}

// isTableRule matches markdown table separator rows like |---|---|.
func isTableRule(line string) bool {
	if !strings.Contains(line, "-") {
		return false
	}
	for _, r := range line {
		if r != '|' && r != '-' && r != ':' && r != ' ' {
			return false
		}
	}
	return true
}
