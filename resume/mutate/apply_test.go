package mutate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

func baseDoc() model.Document {
	return model.Document{
		Contact: model.ContactInfo{
			Name:  "Grace Hopper",
			Email: "grace@example.com",
			Phone: "555-0100",
		},
		Summary: "Compiler pioneer.",
		Education: []model.EducationItem{
			{Institution: "Yale", Degree: "PhD Mathematics", EndDate: "1934"},
		},
		Experience: []model.ExperienceItem{
			{Company: "US Navy", Position: "Rear Admiral", Description: []string{"led compiler development"}},
		},
		Skills: []model.SkillCategory{
			{Category: "Languages", Skills: []string{"COBOL", "FLOW-MATIC"}},
		},
	}.Normalized()
}

func TestApplyTargetsOnlyTheNamedField(t *testing.T) {
	cases := []struct {
		name  string
		op    string
		args  string
		check func(t *testing.T, out model.Document)
	}{
		{
			name: "summary",
			op:   NameUpdateSummary,
			args: `{"summary":"Rewritten summary."}`,
			check: func(t *testing.T, out model.Document) {
				t.Helper()
				if out.Summary != "Rewritten summary." {
					t.Fatalf("summary = %q", out.Summary)
				}
				if len(out.Education) != 1 || len(out.Experience) != 1 {
					t.Fatalf("unrelated sections changed: %+v", out)
				}
			},
		},
		{
			name: "education",
			op:   NameUpdateEducation,
			args: `{"education":[{"institution":"MIT","degree":"BSc"}]}`,
			check: func(t *testing.T, out model.Document) {
				t.Helper()
				if len(out.Education) != 1 || out.Education[0].Institution != "MIT" {
					t.Fatalf("education = %+v", out.Education)
				}
				if out.Summary != "Compiler pioneer." {
					t.Fatalf("summary changed: %q", out.Summary)
				}
			},
		},
		{
			name: "skills",
			op:   NameUpdateSkills,
			args: `{"skills":[{"category":"Cloud","skills":["AWS"]}]}`,
			check: func(t *testing.T, out model.Document) {
				t.Helper()
				if len(out.Skills) != 1 || out.Skills[0].Category != "Cloud" {
					t.Fatalf("skills = %+v", out.Skills)
				}
			},
		},
		{
			name: "custom sections",
			op:   NameUpdateCustomSections,
			args: `{"custom_sections":[{"title":"Awards","items":["Turing Award"]}]}`,
			check: func(t *testing.T, out model.Document) {
				t.Helper()
				if len(out.CustomSections) != 1 || out.CustomSections[0].Title != "Awards" {
					t.Fatalf("custom sections = %+v", out.CustomSections)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Apply(baseDoc(), tc.op, json.RawMessage(tc.args))
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			tc.check(t, out)
		})
	}
}

func TestApplyContactInfoMergesOnlyProvidedKeys(t *testing.T) {
	out, err := Apply(baseDoc(), NameUpdateContactInfo, json.RawMessage(`{"email":"hopper@navy.mil"}`))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out.Contact.Email != "hopper@navy.mil" {
		t.Fatalf("email = %q", out.Contact.Email)
	}
	if out.Contact.Name != "Grace Hopper" || out.Contact.Phone != "555-0100" {
		t.Fatalf("untouched contact fields changed: %+v", out.Contact)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := baseDoc()
	if _, err := Apply(in, NameUpdateSkills, json.RawMessage(`{"skills":[]}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(in.Skills) != 1 || in.Skills[0].Category != "Languages" {
		t.Fatalf("input document mutated: %+v", in.Skills)
	}
}

func TestApplyUnknownOperation(t *testing.T) {
	in := baseDoc()
	_, err := Apply(in, "delete_resume", json.RawMessage(`{}`))
	var unknownErr *UnknownOperationError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("err = %v, want UnknownOperationError", err)
	}
	if unknownErr.Name != "delete_resume" {
		t.Fatalf("unknown op name = %q", unknownErr.Name)
	}
	if in.Summary != "Compiler pioneer." {
		t.Fatalf("document changed on unknown operation")
	}
}

func TestApplyRejectsMalformedArguments(t *testing.T) {
	cases := []struct {
		name string
		op   string
		args string
	}{
		{"invalid json", NameUpdateSummary, `{"summary":`},
		{"missing field", NameUpdateEducation, `{}`},
		{"wrong type", NameUpdateSkills, `{"skills":"not a list"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Apply(baseDoc(), tc.op, json.RawMessage(tc.args))
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("err = %v, want ArgumentError", err)
			}
			if argErr.Op != tc.op {
				t.Fatalf("argErr.Op = %q, want %q", argErr.Op, tc.op)
			}
		})
	}
}

func TestParseOpRoundTrip(t *testing.T) {
	for _, op := range Ops() {
		if got := ParseOp(op.Name()); got != op {
			t.Fatalf("ParseOp(%q) = %v, want %v", op.Name(), got, op)
		}
	}
	if ParseOp("drop_tables") != OpUnknown {
		t.Fatalf("expected unknown op")
	}
}
