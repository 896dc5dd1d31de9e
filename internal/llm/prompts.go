package llm

import (
	"encoding/json"
	"fmt"

	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

// ChatSystemPrompt frames the assistant's role for the chat surface. The
// current document is embedded so the assistant proposes edits against the
// state the user actually sees.
func ChatSystemPrompt(doc model.Document) string {
	docJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		docJSON = []byte("{}")
	}
	return fmt.Sprintf(`You are a resume writing assistant. The user's current resume is below as JSON.

When the user asks for a change to the resume, call the matching tool with the complete new content for that section. Tools replace whole sections (except contact info, which merges the fields you provide), so always include entries that should remain. Never invent facts the user did not state.

Tool calls are suggestions: a human reviews and approves each one before it is applied. For questions or advice that need no edit, just answer in text.

Current resume:
%s`, docJSON)
}

// ParsePrompt asks for a structured extraction of raw resume text.
func ParsePrompt(text string) string {
	return fmt.Sprintf(`Extract the resume below into JSON matching this exact shape:

{
  "contact": {"name": "", "email": "", "phone": "", "linkedin": "", "github": "", "website": "", "location": ""},
  "summary": "",
  "education": [{"institution": "", "degree": "", "start_date": "", "end_date": "", "gpa": ""}],
  "experience": [{"company": "", "position": "", "start_date": "", "end_date": "", "description": [""]}],
  "projects": [{"name": "", "technologies": "", "link": "", "description": [""]}],
  "skills": [{"category": "", "skills": [""]}],
  "custom_sections": [{"title": "", "items": [""]}]
}

Use empty strings or empty lists for anything missing. Respond with JSON only, no markdown fences.

Resume text:
%s`, text)
}

// ImprovePrompt asks for a rewrite of one section targeted at a job.
func ImprovePrompt(content, jobDescription string) string {
	if jobDescription == "" {
		return fmt.Sprintf(`Improve the following resume content. Keep it truthful, tighten the wording and lead with impact. Respond with the improved text only.

%s`, content)
	}
	return fmt.Sprintf(`Improve the following resume content so it speaks to this job description. Keep it truthful, mirror relevant terminology and lead with impact. Respond with the improved text only.

Job description:
%s

Resume content:
%s`, jobDescription, content)
}
