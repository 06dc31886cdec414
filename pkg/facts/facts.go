package facts

import "strings"

// Resume is the structured data gathered from the conversation. It is the
// "facts" half of a generation request; the other half is the user's free-text
// instruction. Stored per session as a JSON column.
type Resume struct {
	Profile        Profile      `json:"profile"`
	Summary        string       `json:"summary,omitempty"`
	Experience     []Experience `json:"experience,omitempty"`
	Education      []Education  `json:"education,omitempty"`
	Skills         []string     `json:"skills,omitempty"`
	Projects       []Project    `json:"projects,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
	Languages      []string     `json:"languages,omitempty"`
}

type Profile struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Experience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description []string `json:"description,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Location    string `json:"location,omitempty"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// IsEmpty reports whether no usable facts have been gathered yet.
func (r Resume) IsEmpty() bool {
	return r.Profile.Name == "" &&
		r.Summary == "" &&
		len(r.Experience) == 0 &&
		len(r.Education) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Projects) == 0
}

// Merge folds newly extracted facts into the existing set. Scalars are
// overwritten only when the incoming value is non-empty; list entries are
// appended unless an entry with the same identity already exists.
func (r Resume) Merge(in Resume) Resume {
	out := r

	out.Profile.Name = pick(r.Profile.Name, in.Profile.Name)
	out.Profile.Email = pick(r.Profile.Email, in.Profile.Email)
	out.Profile.Phone = pick(r.Profile.Phone, in.Profile.Phone)
	out.Profile.Location = pick(r.Profile.Location, in.Profile.Location)
	out.Profile.LinkedIn = pick(r.Profile.LinkedIn, in.Profile.LinkedIn)
	out.Profile.GitHub = pick(r.Profile.GitHub, in.Profile.GitHub)
	out.Profile.Website = pick(r.Profile.Website, in.Profile.Website)
	out.Summary = pick(r.Summary, in.Summary)

	for _, exp := range in.Experience {
		if !hasExperience(out.Experience, exp) {
			out.Experience = append(out.Experience, exp)
		}
	}
	for _, edu := range in.Education {
		if !hasEducation(out.Education, edu) {
			out.Education = append(out.Education, edu)
		}
	}
	out.Skills = appendUnique(out.Skills, in.Skills)
	for _, p := range in.Projects {
		if !hasProject(out.Projects, p) {
			out.Projects = append(out.Projects, p)
		}
	}
	out.Certifications = appendUnique(out.Certifications, in.Certifications)
	out.Languages = appendUnique(out.Languages, in.Languages)

	return out
}

func pick(current, incoming string) string {
	if strings.TrimSpace(incoming) != "" {
		return incoming
	}
	return current
}

func appendUnique(current, incoming []string) []string {
	seen := make(map[string]bool, len(current))
	for _, s := range current {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range incoming {
		if s == "" || seen[strings.ToLower(s)] {
			continue
		}
		current = append(current, s)
		seen[strings.ToLower(s)] = true
	}
	return current
}

func hasExperience(list []Experience, e Experience) bool {
	for _, x := range list {
		if strings.EqualFold(x.Company, e.Company) && strings.EqualFold(x.Position, e.Position) {
			return true
		}
	}
	return false
}

func hasEducation(list []Education, e Education) bool {
	for _, x := range list {
		if strings.EqualFold(x.Institution, e.Institution) && strings.EqualFold(x.Degree, e.Degree) {
			return true
		}
	}
	return false
}

func hasProject(list []Project, p Project) bool {
	for _, x := range list {
		if strings.EqualFold(x.Name, p.Name) {
			return true
		}
	}
	return false
}
