package llm

import "github.com/intragalactic-stranger/Adaptive-CV/resume/mutate"

// Tool describes one edit operation the assistant may call. Parameters is a
// JSON Schema object; providers translate it into their native tool format.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Tools returns the declarations for the supported edit operations. The
// parameter shapes mirror the document model exactly.
func Tools() []Tool {
	return []Tool{
		{
			Name:        mutate.NameUpdateContactInfo,
			Description: "Update the candidate's contact information. Only include the fields that should change.",
			Parameters: objectSchema(map[string]any{
				"name":     stringSchema("Full name"),
				"email":    stringSchema("Email address"),
				"phone":    stringSchema("Phone number"),
				"linkedin": stringSchema("LinkedIn profile URL"),
				"github":   stringSchema("GitHub profile URL"),
				"website":  stringSchema("Personal website URL"),
				"location": stringSchema("City and country or region"),
			}),
		},
		{
			Name:        mutate.NameUpdateSummary,
			Description: "Replace the professional summary with new text.",
			Parameters: objectSchema(map[string]any{
				"summary": stringSchema("The full replacement summary text"),
			}, "summary"),
		},
		{
			Name:        mutate.NameUpdateEducation,
			Description: "Replace the full education list. Include every entry that should remain.",
			Parameters: objectSchema(map[string]any{
				"education": arraySchema(objectSchema(map[string]any{
					"institution": stringSchema("School or university name"),
					"degree":      stringSchema("Degree and field of study"),
					"start_date":  stringSchema("Start date, e.g. Sep 2018"),
					"end_date":    stringSchema("End date or Present"),
					"gpa":         stringSchema("GPA if worth showing"),
				}, "institution", "degree")),
			}, "education"),
		},
		{
			Name:        mutate.NameUpdateExperience,
			Description: "Replace the full work experience list. Include every entry that should remain.",
			Parameters: objectSchema(map[string]any{
				"experience": arraySchema(objectSchema(map[string]any{
					"company":     stringSchema("Employer name"),
					"position":    stringSchema("Job title"),
					"start_date":  stringSchema("Start date, e.g. Jan 2021"),
					"end_date":    stringSchema("End date or Present"),
					"description": arraySchema(stringSchema("One achievement bullet")),
				}, "company", "position")),
			}, "experience"),
		},
		{
			Name:        mutate.NameUpdateProjects,
			Description: "Replace the full projects list. Include every entry that should remain.",
			Parameters: objectSchema(map[string]any{
				"projects": arraySchema(objectSchema(map[string]any{
					"name":         stringSchema("Project name"),
					"technologies": stringSchema("Comma-separated technologies used"),
					"link":         stringSchema("Project URL"),
					"description":  arraySchema(stringSchema("One project bullet")),
				}, "name")),
			}, "projects"),
		},
		{
			Name:        mutate.NameUpdateSkills,
			Description: "Replace the full skills list, grouped by category.",
			Parameters: objectSchema(map[string]any{
				"skills": arraySchema(objectSchema(map[string]any{
					"category": stringSchema("Category name, e.g. Languages"),
					"skills":   arraySchema(stringSchema("One skill")),
				}, "category", "skills")),
			}, "skills"),
		},
		{
			Name:        mutate.NameUpdateCustomSections,
			Description: "Replace the full list of custom sections such as certifications or awards.",
			Parameters: objectSchema(map[string]any{
				"custom_sections": arraySchema(objectSchema(map[string]any{
					"title": stringSchema("Section title"),
					"items": arraySchema(stringSchema("One section item")),
				}, "title", "items")),
			}, "custom_sections"),
		},
	}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func arraySchema(items map[string]any) map[string]any {
	return map[string]any{
		"type":  "array",
		"items": items,
	}
}

func stringSchema(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}
