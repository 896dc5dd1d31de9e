package model

import "strings"

// Document is the canonical resume payload. Every surface that edits a
// resume reads and writes this shape; list fields are always present
// (empty, never nil) so that serialized documents keep a stable schema.
type Document struct {
	Contact        ContactInfo      `json:"contact"`
	LogoPath       string           `json:"logo_path,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Education      []EducationItem  `json:"education"`
	Experience     []ExperienceItem `json:"experience"`
	Projects       []ProjectItem    `json:"projects"`
	Skills         []SkillCategory  `json:"skills"`
	CustomSections []CustomSection  `json:"custom_sections"`
}

// ContactInfo captures the candidate's identity and links.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
}

// EducationItem represents one education entry.
type EducationItem struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// ExperienceItem represents one work history entry.
type ExperienceItem struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description []string `json:"description"`
}

// ProjectItem represents a notable project.
type ProjectItem struct {
	Name         string   `json:"name"`
	Technologies string   `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
	Description  []string `json:"description"`
}

// SkillCategory groups skills under a named category.
type SkillCategory struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// CustomSection holds sections outside the standard set, such as
// certifications, awards or volunteering.
type CustomSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// New returns an empty document with all list fields initialized.
func New() Document {
	return Document{}.Normalized()
}

// Normalized returns a copy of the document with nil list fields replaced
// by empty slices. Replacing a document always goes through this, so no
// reader ever observes a missing list.
func (d Document) Normalized() Document {
	if d.Education == nil {
		d.Education = []EducationItem{}
	}
	if d.Experience == nil {
		d.Experience = []ExperienceItem{}
	}
	if d.Projects == nil {
		d.Projects = []ProjectItem{}
	}
	if d.Skills == nil {
		d.Skills = []SkillCategory{}
	}
	if d.CustomSections == nil {
		d.CustomSections = []CustomSection{}
	}
	for i := range d.Experience {
		if d.Experience[i].Description == nil {
			d.Experience[i].Description = []string{}
		}
	}
	for i := range d.Projects {
		if d.Projects[i].Description == nil {
			d.Projects[i].Description = []string{}
		}
	}
	for i := range d.Skills {
		if d.Skills[i].Skills == nil {
			d.Skills[i].Skills = []string{}
		}
	}
	for i := range d.CustomSections {
		if d.CustomSections[i].Items == nil {
			d.CustomSections[i].Items = []string{}
		}
	}
	return d
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Education = append([]EducationItem(nil), d.Education...)
	out.Experience = make([]ExperienceItem, len(d.Experience))
	for i, item := range d.Experience {
		item.Description = append([]string(nil), item.Description...)
		out.Experience[i] = item
	}
	out.Projects = make([]ProjectItem, len(d.Projects))
	for i, item := range d.Projects {
		item.Description = append([]string(nil), item.Description...)
		out.Projects[i] = item
	}
	out.Skills = make([]SkillCategory, len(d.Skills))
	for i, cat := range d.Skills {
		cat.Skills = append([]string(nil), cat.Skills...)
		out.Skills[i] = cat
	}
	out.CustomSections = make([]CustomSection, len(d.CustomSections))
	for i, sec := range d.CustomSections {
		sec.Items = append([]string(nil), sec.Items...)
		out.CustomSections[i] = sec
	}
	return out.Normalized()
}

// IsEmpty reports whether the document carries no content at all.
func (d Document) IsEmpty() bool {
	return strings.TrimSpace(d.Contact.Name) == "" &&
		strings.TrimSpace(d.Summary) == "" &&
		len(d.Education) == 0 &&
		len(d.Experience) == 0 &&
		len(d.Projects) == 0 &&
		len(d.Skills) == 0 &&
		len(d.CustomSections) == 0
}
