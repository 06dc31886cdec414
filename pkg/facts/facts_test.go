package facts

import "testing"

func TestMergeKeepsExistingScalarsUnlessReplaced(t *testing.T) {
	current := Resume{Profile: Profile{Name: "Jane Doe", Email: "jane@example.com"}}

	merged := current.Merge(Resume{Profile: Profile{Phone: "555-1234"}})

	if merged.Profile.Name != "Jane Doe" || merged.Profile.Email != "jane@example.com" {
		t.Errorf("existing scalars lost: %+v", merged.Profile)
	}
	if merged.Profile.Phone != "555-1234" {
		t.Errorf("new scalar not merged: %+v", merged.Profile)
	}

	merged = merged.Merge(Resume{Profile: Profile{Name: "Jane A. Doe"}})
	if merged.Profile.Name != "Jane A. Doe" {
		t.Errorf("non-empty incoming scalar must win: %q", merged.Profile.Name)
	}
}

func TestMergeDeduplicatesListEntries(t *testing.T) {
	current := Resume{
		Experience: []Experience{{Company: "Acme", Position: "Engineer"}},
		Skills:     []string{"Go"},
	}

	merged := current.Merge(Resume{
		Experience: []Experience{
			{Company: "acme", Position: "engineer"}, // same identity, different case
			{Company: "Globex", Position: "Analyst"},
		},
		Skills: []string{"go", "SQL"},
	})

	if len(merged.Experience) != 2 {
		t.Errorf("Experience = %+v, want 2 entries", merged.Experience)
	}
	if len(merged.Skills) != 2 {
		t.Errorf("Skills = %v, want [Go SQL]", merged.Skills)
	}
}

func TestIsEmpty(t *testing.T) {
	if !(Resume{}).IsEmpty() {
		t.Error("zero resume should be empty")
	}
	if (Resume{Skills: []string{"Go"}}).IsEmpty() {
		t.Error("resume with skills should not be empty")
	}
}

func TestParseExtraction(t *testing.T) {
	raw := `Here you go:
{
  "facts": {
    "profile": {"name": "Jane Doe"},
    "experience": [{"company": "Acme", "position": "Engineer"}],
    "skills": ["Go", "SQL"]
  },
  "reply": "Noted! When did you start at Acme?"
}`

	got, err := parseExtraction(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got.Facts.Profile.Name != "Jane Doe" {
		t.Errorf("name = %q", got.Facts.Profile.Name)
	}
	if len(got.Facts.Experience) != 1 || got.Facts.Experience[0].Company != "Acme" {
		t.Errorf("experience = %+v", got.Facts.Experience)
	}
	if got.Reply == "" {
		t.Error("reply missing")
	}
}

func TestParseExtractionRejectsGarbage(t *testing.T) {
	if _, err := parseExtraction("sorry, I cannot help with that"); err == nil {
		t.Fatal("expected error")
	}
}
