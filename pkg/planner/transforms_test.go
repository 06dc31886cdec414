package planner

import (
	"strings"
	"testing"

	"ai-resume-be/pkg/document"
)

const sampleResume = `# Jane Doe
jane@example.com
(555) 123-4567
linkedin.com/in/janedoe

## Experience
- Built billing pipeline at Acme
- Shipped reporting dashboards

## Education
- BS Computer Science, State University`

func TestBoldNameLine(t *testing.T) {
	doc := document.New(sampleResume)

	out := BoldNameLine(doc)

	gotLines := out.Lines()
	if gotLines[0] != "# **Jane Doe**" {
		t.Fatalf("name line = %q, want %q", gotLines[0], "# **Jane Doe**")
	}

	// Every other line must be byte-identical.
	wantLines := doc.Lines()
	for i := 1; i < len(wantLines); i++ {
		if gotLines[i] != wantLines[i] {
			t.Errorf("line %d changed: %q -> %q", i, wantLines[i], gotLines[i])
		}
	}
}

func TestTransformsAreIdempotent(t *testing.T) {
	spaced := strings.ReplaceAll(sampleResume, "\n\n## Education", "\n\n\n\n\n## Education")

	tests := []struct {
		name      string
		transform Transform
		input     string
	}{
		{"bold name", BoldNameLine, sampleResume},
		{"italic name", ItalicNameLine, sampleResume},
		{"color headings", ColorHeadings("blue"), sampleResume},
		{"collapse blanks", CollapseBlankLines, spaced},
		{"tighten spacing", TightenSectionSpacing, spaced},
		{"section breaks", EnsureSectionBreaks, sampleResume},
		{"compact contact", CompactContactLines, sampleResume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := tt.transform(document.New(tt.input))
			twice := tt.transform(once)
			if once.Text() != twice.Text() {
				t.Errorf("second application changed the document:\nonce:\n%s\ntwice:\n%s",
					once.Text(), twice.Text())
			}
		})
	}
}

func TestItalicNameSkipsBoldName(t *testing.T) {
	doc := BoldNameLine(document.New(sampleResume))
	out := ItalicNameLine(doc)
	if out.Lines()[0] != "# **Jane Doe**" {
		t.Fatalf("italic over bold produced %q", out.Lines()[0])
	}
}

func TestColorHeadingsReplacesPreviousColor(t *testing.T) {
	doc := ColorHeadings("blue")(document.New(sampleResume))
	out := ColorHeadings("green")(doc)

	for _, line := range out.Lines() {
		if !document.IsHeadingLine(line) {
			continue
		}
		if strings.Contains(line, "color:blue") {
			t.Errorf("stale color tag left behind: %q", line)
		}
		if !strings.HasSuffix(line, "<!--color:green-->") {
			t.Errorf("heading missing new color tag: %q", line)
		}
	}
}

func TestColorHeadingsLeavesNameLineAlone(t *testing.T) {
	out := ColorHeadings("navy")(document.New(sampleResume))
	if out.Lines()[0] != "# Jane Doe" {
		t.Fatalf("name line changed: %q", out.Lines()[0])
	}
}

func TestCollapseBlankLines(t *testing.T) {
	in := "# Jane Doe\n\n\n\n\n## Experience\n- item"
	out := CollapseBlankLines(document.New(in))
	want := "# Jane Doe\n\n## Experience\n- item"
	if out.Text() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", out.Text(), want)
	}
}

func TestCompactContactLines(t *testing.T) {
	out := CompactContactLines(document.New(sampleResume))

	want := "jane@example.com | (555) 123-4567 | linkedin.com/in/janedoe"
	if out.Lines()[1] != want {
		t.Fatalf("contact line = %q, want %q", out.Lines()[1], want)
	}
	if got := len(out.Lines()); got != len(document.New(sampleResume).Lines())-2 {
		t.Fatalf("unexpected line count %d", got)
	}
}

func TestCompactContactPreservesWords(t *testing.T) {
	doc := document.New(sampleResume)
	out := CompactContactLines(doc)
	if b, a := document.WordCount(doc.Text()), document.WordCount(out.Text()); b != a {
		t.Fatalf("word count changed %d -> %d", b, a)
	}
}
