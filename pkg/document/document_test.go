package document

import "testing"

const sample = `# Jane Doe
jane@example.com
(555) 123-4567

## Experience
- Built billing pipeline at Acme
- Shipped reporting dashboards

## Skills
Go, SQL`

func TestBuildIndex(t *testing.T) {
	idx := New(sample).BuildIndex()

	if idx.NameLine != 0 {
		t.Errorf("NameLine = %d, want 0", idx.NameLine)
	}
	if len(idx.HeadingLines) != 2 || idx.HeadingLines[0] != 4 || idx.HeadingLines[1] != 8 {
		t.Errorf("HeadingLines = %v, want [4 8]", idx.HeadingLines)
	}
	if len(idx.BulletLines) != 2 {
		t.Errorf("BulletLines = %v, want two entries", idx.BulletLines)
	}
	if idx.ContactStart != 1 || idx.ContactEnd != 2 {
		t.Errorf("contact run = [%d, %d], want [1, 2]", idx.ContactStart, idx.ContactEnd)
	}
}

func TestBuildIndexWithoutName(t *testing.T) {
	idx := New("just some text\nwithout structure").BuildIndex()
	if idx.NameLine != -1 {
		t.Errorf("NameLine = %d, want -1", idx.NameLine)
	}
	if idx.ContactStart != -1 {
		t.Errorf("ContactStart = %d, want -1", idx.ContactStart)
	}
}

func TestWordCountIgnoresMarkup(t *testing.T) {
	plain := "# Jane Doe\n\n## Experience\n- Built billing pipeline"
	decorated := "# **Jane Doe**\n\n## Experience <!--color:blue-->\n- Built `billing` pipeline"

	p, d := WordCount(plain), WordCount(decorated)
	if p != d {
		t.Fatalf("markup moved the count: %d vs %d", p, d)
	}
	if p != 6 {
		t.Fatalf("WordCount = %d, want 6", p)
	}
}

func TestWordCountSkipsRulesAndTables(t *testing.T) {
	text := "words here\n---\n| a | b |\n|---|---|\n| one | two |"
	// The rule row contributes nothing; table cells still count.
	if got := WordCount(text); got != 6 {
		t.Fatalf("WordCount = %d, want 6", got)
	}
}

func TestLineKindPredicates(t *testing.T) {
	tests := []struct {
		line                  string
		name, heading, bullet bool
	}{
		{"# Jane Doe", true, false, false},
		{"## Experience", false, true, false},
		{"- did a thing", false, false, true},
		{"  * nested bullet", false, false, true},
		{"plain text", false, false, false},
	}

	for _, tt := range tests {
		if got := IsNameLine(tt.line); got != tt.name {
			t.Errorf("IsNameLine(%q) = %t", tt.line, got)
		}
		if got := IsHeadingLine(tt.line); got != tt.heading {
			t.Errorf("IsHeadingLine(%q) = %t", tt.line, got)
		}
		if got := IsBulletLine(tt.line); got != tt.bullet {
			t.Errorf("IsBulletLine(%q) = %t", tt.line, got)
		}
	}
}
