// Package mutate applies structured edit operations to a resume document.
// The operation set is closed: every operation the assistant may propose is
// enumerated here, and anything outside the set is rejected explicitly.
package mutate

// Op identifies one of the supported edit operations.
type Op int

const (
	OpUnknown Op = iota
	OpUpdateContactInfo
	OpUpdateSummary
	OpUpdateEducation
	OpUpdateExperience
	OpUpdateProjects
	OpUpdateSkills
	OpUpdateCustomSections
)

const (
	NameUpdateContactInfo    = "update_contact_info"
	NameUpdateSummary        = "update_summary"
	NameUpdateEducation      = "update_education"
	NameUpdateExperience     = "update_experience"
	NameUpdateProjects       = "update_projects"
	NameUpdateSkills         = "update_skills"
	NameUpdateCustomSections = "update_custom_sections"
)

// ParseOp maps a wire operation name to its Op. Unrecognized names map to
// OpUnknown rather than an error so callers can record the attempt.
func ParseOp(name string) Op {
	switch name {
	case NameUpdateContactInfo:
		return OpUpdateContactInfo
	case NameUpdateSummary:
		return OpUpdateSummary
	case NameUpdateEducation:
		return OpUpdateEducation
	case NameUpdateExperience:
		return OpUpdateExperience
	case NameUpdateProjects:
		return OpUpdateProjects
	case NameUpdateSkills:
		return OpUpdateSkills
	case NameUpdateCustomSections:
		return OpUpdateCustomSections
	default:
		return OpUnknown
	}
}

// Name returns the wire name of the operation.
func (op Op) Name() string {
	switch op {
	case OpUpdateContactInfo:
		return NameUpdateContactInfo
	case OpUpdateSummary:
		return NameUpdateSummary
	case OpUpdateEducation:
		return NameUpdateEducation
	case OpUpdateExperience:
		return NameUpdateExperience
	case OpUpdateProjects:
		return NameUpdateProjects
	case OpUpdateSkills:
		return NameUpdateSkills
	case OpUpdateCustomSections:
		return NameUpdateCustomSections
	default:
		return "unknown"
	}
}

// Label returns a short human description used in proposal cards and chat
// notices.
func (op Op) Label() string {
	switch op {
	case OpUpdateContactInfo:
		return "Update contact information"
	case OpUpdateSummary:
		return "Update professional summary"
	case OpUpdateEducation:
		return "Update education"
	case OpUpdateExperience:
		return "Update work experience"
	case OpUpdateProjects:
		return "Update projects"
	case OpUpdateSkills:
		return "Update skills"
	case OpUpdateCustomSections:
		return "Update custom sections"
	default:
		return "Proposed change"
	}
}

// Ops returns the supported operations in a stable order.
func Ops() []Op {
	return []Op{
		OpUpdateContactInfo,
		OpUpdateSummary,
		OpUpdateEducation,
		OpUpdateExperience,
		OpUpdateProjects,
		OpUpdateSkills,
		OpUpdateCustomSections,
	}
}
