package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

// HTML renders the document into the standalone HTML page that the PDF
// printer consumes.
func HTML(doc model.Document) (string, error) {
	if strings.TrimSpace(doc.Contact.Name) == "" {
		return "", errors.New("contact name is required")
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, templateData(doc)); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return buf.String(), nil
}

type resumeView struct {
	Doc          model.Document
	ContactLines []string
}

func templateData(doc model.Document) resumeView {
	var lines []string
	for _, part := range []string{
		doc.Contact.Email,
		doc.Contact.Phone,
		doc.Contact.Location,
		doc.Contact.LinkedIn,
		doc.Contact.GitHub,
		doc.Contact.Website,
	} {
		if strings.TrimSpace(part) != "" {
			lines = append(lines, part)
		}
	}
	return resumeView{Doc: doc, ContactLines: lines}
}

var resumeTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, 'Times New Roman', serif; color: #1a1a1a; margin: 0; font-size: 11pt; }
  h1 { font-size: 20pt; margin: 0 0 2pt 0; }
  h2 { font-size: 12pt; border-bottom: 1px solid #444; text-transform: uppercase; letter-spacing: 1px; margin: 14pt 0 6pt 0; padding-bottom: 2pt; }
  .contact { font-size: 9.5pt; color: #333; }
  .contact span + span::before { content: " | "; }
  .entry { margin-bottom: 8pt; }
  .entry-head { display: flex; justify-content: space-between; font-weight: bold; }
  .entry-sub { font-style: italic; font-size: 10pt; }
  .dates { font-weight: normal; font-size: 10pt; color: #333; }
  ul { margin: 3pt 0 0 0; padding-left: 16pt; }
  li { margin-bottom: 2pt; }
  img.logo { max-height: 48px; float: right; }
</style>
</head>
<body>
{{if .Doc.LogoPath}}<img class="logo" src="{{.Doc.LogoPath}}" alt="">{{end}}
<h1>{{.Doc.Contact.Name}}</h1>
<div class="contact">{{range .ContactLines}}<span>{{.}}</span>{{end}}</div>

{{if .Doc.Summary}}
<h2>Summary</h2>
<p>{{.Doc.Summary}}</p>
{{end}}

{{if .Doc.Experience}}
<h2>Experience</h2>
{{range .Doc.Experience}}
<div class="entry">
  <div class="entry-head"><span>{{.Company}}</span><span class="dates">{{.StartDate}}{{if .EndDate}} - {{.EndDate}}{{end}}</span></div>
  <div class="entry-sub">{{.Position}}</div>
  {{if .Description}}<ul>{{range .Description}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}
{{end}}

{{if .Doc.Education}}
<h2>Education</h2>
{{range .Doc.Education}}
<div class="entry">
  <div class="entry-head"><span>{{.Institution}}</span><span class="dates">{{.StartDate}}{{if .EndDate}} - {{.EndDate}}{{end}}</span></div>
  <div class="entry-sub">{{.Degree}}{{if .GPA}} (GPA: {{.GPA}}){{end}}</div>
</div>
{{end}}
{{end}}

{{if .Doc.Projects}}
<h2>Projects</h2>
{{range .Doc.Projects}}
<div class="entry">
  <div class="entry-head"><span>{{.Name}}</span>{{if .Link}}<span class="dates">{{.Link}}</span>{{end}}</div>
  {{if .Technologies}}<div class="entry-sub">{{.Technologies}}</div>{{end}}
  {{if .Description}}<ul>{{range .Description}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}
{{end}}

{{if .Doc.Skills}}
<h2>Skills</h2>
<ul>
{{range .Doc.Skills}}<li><strong>{{.Category}}:</strong> {{range $i, $s := .Skills}}{{if $i}}, {{end}}{{$s}}{{end}}</li>{{end}}
</ul>
{{end}}

{{range .Doc.CustomSections}}
<h2>{{.Title}}</h2>
<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{end}}
</body>
</html>
`))
