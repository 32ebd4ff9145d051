package models

// CVExperience is one position held by a candidate. Entries keep the order
// they were entered in.
type CVExperience struct {
	Company     string  `json:"company" validate:"required"`
	Role        string  `json:"role" validate:"required"`
	Years       float64 `json:"years" validate:"gte=0"`
	Description string  `json:"description,omitempty"`
}

// CV is a candidate's resume. A user may own any number of CVs.
type CV struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Title      string         `json:"title" validate:"required"`
	Summary    string         `json:"summary"`
	Skills     []string       `json:"skills"`
	Experience []CVExperience `json:"experience" validate:"dive"`
	// Optional data-URI encoded attachment (PDF/DOCX upload), kept opaque.
	FileBase64 string `json:"fileBase64,omitempty"`
	UpdatedAt  string `json:"updatedAt"`
}

// CVPatch is a partial update of a CV. Nil fields leave the existing value
// unchanged; ID and UserID are not patchable.
type CVPatch struct {
	Title      *string         `json:"title,omitempty"`
	Summary    *string         `json:"summary,omitempty"`
	Skills     *[]string       `json:"skills,omitempty"`
	Experience *[]CVExperience `json:"experience,omitempty" validate:"omitempty,dive"`
	FileBase64 *string         `json:"fileBase64,omitempty"`
}

// Apply merges the patch into cv. The caller stamps UpdatedAt.
func (p CVPatch) Apply(cv *CV) {
	if p.Title != nil {
		cv.Title = *p.Title
	}
	if p.Summary != nil {
		cv.Summary = *p.Summary
	}
	if p.Skills != nil {
		cv.Skills = *p.Skills
	}
	if p.Experience != nil {
		cv.Experience = *p.Experience
	}
	if p.FileBase64 != nil {
		cv.FileBase64 = *p.FileBase64
	}
}
