package mutate

import (
	"encoding/json"
	"fmt"

	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

// UnknownOperationError reports an operation name outside the supported set.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// ArgumentError reports arguments that do not decode into the shape the
// operation requires.
type ArgumentError struct {
	Op  string
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Op, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// ContactPatch is a partial contact update. Only fields present in the
// arguments are applied; absent fields keep their current values.
type ContactPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
	Website  *string `json:"website"`
	Location *string `json:"location"`
}

type summaryArgs struct {
	Summary *string `json:"summary"`
}

type educationArgs struct {
	Education []model.EducationItem `json:"education"`
}

type experienceArgs struct {
	Experience []model.ExperienceItem `json:"experience"`
}

type projectsArgs struct {
	Projects []model.ProjectItem `json:"projects"`
}

type skillsArgs struct {
	Skills []model.SkillCategory `json:"skills"`
}

type customSectionsArgs struct {
	CustomSections []model.CustomSection `json:"custom_sections"`
}

// CheckArguments validates that raw decodes into the argument shape of the
// named operation without applying anything. An unknown name yields an
// UnknownOperationError.
func CheckArguments(name string, raw json.RawMessage) error {
	op := ParseOp(name)
	if op == OpUnknown {
		return &UnknownOperationError{Name: name}
	}
	_, err := decodeArguments(op, raw)
	return err
}

// Apply runs the named operation against doc and returns the resulting
// document. The input document is never modified; each operation touches
// only its own field and the result is normalized.
func Apply(doc model.Document, name string, raw json.RawMessage) (model.Document, error) {
	op := ParseOp(name)
	if op == OpUnknown {
		return model.Document{}, &UnknownOperationError{Name: name}
	}
	args, err := decodeArguments(op, raw)
	if err != nil {
		return model.Document{}, err
	}

	next := doc.Clone()
	switch op {
	case OpUpdateContactInfo:
		applyContactPatch(&next.Contact, args.(*ContactPatch))
	case OpUpdateSummary:
		next.Summary = *args.(*summaryArgs).Summary
	case OpUpdateEducation:
		next.Education = args.(*educationArgs).Education
	case OpUpdateExperience:
		next.Experience = args.(*experienceArgs).Experience
	case OpUpdateProjects:
		next.Projects = args.(*projectsArgs).Projects
	case OpUpdateSkills:
		next.Skills = args.(*skillsArgs).Skills
	case OpUpdateCustomSections:
		next.CustomSections = args.(*customSectionsArgs).CustomSections
	}
	return next.Normalized(), nil
}

func decodeArguments(op Op, raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch op {
	case OpUpdateContactInfo:
		var args ContactPatch
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ArgumentError{Op: op.Name(), Err: err}
		}
		return &args, nil
	case OpUpdateSummary:
		var args summaryArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ArgumentError{Op: op.Name(), Err: err}
		}
		if args.Summary == nil {
			return nil, &ArgumentError{Op: op.Name(), Err: fmt.Errorf("missing field %q", "summary")}
		}
		return &args, nil
	case OpUpdateEducation:
		var args educationArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ArgumentError{Op: op.Name(), Err: err}
		}
		if args.Education == nil {
			return nil, &ArgumentError{Op: op.Name(), Err: fmt.Errorf("missing field %q", "education")}
		}
		return &args, nil
	case OpUpdateExperience:
		var args experienceArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ArgumentError{Op: op.Name(), Err: err}
		}
		if args.Experience == nil {
			return nil, &ArgumentError{Op: op.Name(), Err: fmt.Errorf("missing field %q", "experience")}
		}
		return &args, nil
	case OpUpdateProjects:
		var args projectsArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ArgumentError{Op: op.Name(), Err: err}
		}
		if args.Projects == nil {
			return nil, &ArgumentError{Op: op.Name(), Err: fmt.Errorf("missing field %q", "projects")}
		}
		return &args, nil
	case OpUpdateSkills:
		var args skillsArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ArgumentError{Op: op.Name(), Err: err}
		}
		if args.Skills == nil {
			return nil, &ArgumentError{Op: op.Name(), Err: fmt.Errorf("missing field %q", "skills")}
		}
		return &args, nil
	case OpUpdateCustomSections:
		var args customSectionsArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ArgumentError{Op: op.Name(), Err: err}
		}
		if args.CustomSections == nil {
			return nil, &ArgumentError{Op: op.Name(), Err: fmt.Errorf("missing field %q", "custom_sections")}
		}
		return &args, nil
	default:
		return nil, &UnknownOperationError{Name: op.Name()}
	}
}

func applyContactPatch(contact *model.ContactInfo, patch *ContactPatch) {
	if patch.Name != nil {
		contact.Name = *patch.Name
	}
	if patch.Email != nil {
		contact.Email = *patch.Email
	}
	if patch.Phone != nil {
		contact.Phone = *patch.Phone
	}
	if patch.LinkedIn != nil {
		contact.LinkedIn = *patch.LinkedIn
	}
	if patch.GitHub != nil {
		contact.GitHub = *patch.GitHub
	}
	if patch.Website != nil {
		contact.Website = *patch.Website
	}
	if patch.Location != nil {
		contact.Location = *patch.Location
	}
}
