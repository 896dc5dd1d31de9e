package model

import (
	"encoding/json"
	"testing"
)

func TestNormalizedFillsMissingLists(t *testing.T) {
	d := Document{
		Experience: []ExperienceItem{{Company: "Acme", Position: "Engineer"}},
		Skills:     []SkillCategory{{Category: "Languages"}},
	}.Normalized()

	if d.Education == nil || d.Projects == nil || d.CustomSections == nil {
		t.Fatalf("expected top-level lists to be non-nil, got %+v", d)
	}
	if d.Experience[0].Description == nil {
		t.Fatalf("expected experience description to be non-nil")
	}
	if d.Skills[0].Skills == nil {
		t.Fatalf("expected skill list to be non-nil")
	}
}

func TestNormalizedSerializesStableShape(t *testing.T) {
	raw, err := json.Marshal(New())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"education", "experience", "projects", "skills", "custom_sections"} {
		v, ok := out[field]
		if !ok {
			t.Fatalf("missing field %q in %s", field, raw)
		}
		if _, ok := v.([]any); !ok {
			t.Fatalf("field %q is %T, want array", field, v)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Document{
		Contact: ContactInfo{Name: "Ada Lovelace"},
		Experience: []ExperienceItem{
			{Company: "Analytical Engines", Position: "Programmer", Description: []string{"wrote the first program"}},
		},
		Skills: []SkillCategory{{Category: "Math", Skills: []string{"calculus"}}},
	}.Normalized()

	clone := orig.Clone()
	clone.Contact.Name = "Changed"
	clone.Experience[0].Description[0] = "changed"
	clone.Skills[0].Skills[0] = "changed"

	if orig.Contact.Name != "Ada Lovelace" {
		t.Fatalf("clone mutated original contact")
	}
	if orig.Experience[0].Description[0] != "wrote the first program" {
		t.Fatalf("clone mutated original experience")
	}
	if orig.Skills[0].Skills[0] != "calculus" {
		t.Fatalf("clone mutated original skills")
	}
}

func TestIsEmpty(t *testing.T) {
	if !New().IsEmpty() {
		t.Fatalf("expected fresh document to be empty")
	}
	d := New()
	d.Summary = "Seasoned engineer."
	if d.IsEmpty() {
		t.Fatalf("expected document with summary to be non-empty")
	}
}
