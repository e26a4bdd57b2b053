package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StructuredResume is the canonical field-based resume representation.
// It is the aggregate root: every renderer and exporter consumes this type,
// and it is owned by exactly one application at a time.
type StructuredResume struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ContactInfo     ContactInfo         `json:"contactInfo"`
	Summary         string              `json:"summary,omitempty"`
	Experience      []ExperienceItem    `json:"experience"`
	Education       []EducationItem     `json:"education"`
	Skills          []string            `json:"skills"`
	TechnicalSkills TechnicalSkills     `json:"technicalSkills,omitempty"`
	Certifications  []CertificationItem `json:"certifications,omitempty"`
	Projects        []ProjectItem       `json:"projects,omitempty"`
	CustomSections  []CustomSection     `json:"customSections,omitempty"`

	Preferences *Preferences `json:"preferences,omitempty"`
}

// ContactInfo captures top-of-resume contact details. Only the name is
// required; the model does not validate the shape of the other fields.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ExperienceItem represents a work history entry. Bullet order is display
// order. An empty EndDate means the role is current.
type ExperienceItem struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Bullets      []string `json:"bullets"`
	Technologies []string `json:"technologies,omitempty"`
}

// DateRange renders the display range for the entry, substituting "Present"
// when the end date is absent.
func (e ExperienceItem) DateRange() string {
	if e.EndDate == "" {
		return e.StartDate + " - Present"
	}
	return e.StartDate + " - " + e.EndDate
}

// EducationItem represents an education entry.
type EducationItem struct {
	ID             string   `json:"id"`
	Institution    string   `json:"institution"`
	Degree         string   `json:"degree"`
	Field          string   `json:"field,omitempty"`
	Location       string   `json:"location,omitempty"`
	GraduationDate string   `json:"graduationDate,omitempty"`
	GPA            string   `json:"gpa,omitempty"`
	Honors         []string `json:"honors,omitempty"`
}

// CertificationItem represents a certification entry.
type CertificationItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Issuer         string `json:"issuer,omitempty"`
	Date           string `json:"date,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	CredentialID   string `json:"credentialId,omitempty"`
}

// ProjectItem represents a notable project.
type ProjectItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
}

// CustomSection carries a user-defined section. Renderers may ignore it.
type CustomSection struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Type    string   `json:"type"` // bullets, paragraph, or list
	Content []string `json:"content"`
}

// Preferences are rendering hints. Templates are free to ignore them.
type Preferences struct {
	ShowContactIcons bool     `json:"showContactIcons,omitempty"`
	DateFormat       string   `json:"dateFormat,omitempty"`
	SkillsLayout     string   `json:"skillsLayout,omitempty"`
	SectionOrder     []string `json:"sectionOrder,omitempty"`
}

// HasTechnicalSkills reports whether the grouped skills take precedence over
// the flat list. The two are exclusive sources of truth for rendering.
func (r StructuredResume) HasTechnicalSkills() bool {
	return len(r.TechnicalSkills) > 0
}

// Touch advances the version and refreshes the update timestamp. Call it on
// every content mutation.
func (r *StructuredResume) Touch() {
	r.Version++
	r.UpdatedAt = time.Now().UTC()
}

// Stamp assigns identity and metadata to a freshly generated resume.
func (r *StructuredResume) Stamp() {
	now := time.Now().UTC()
	if r.ID == "" {
		r.ID = "resume-" + uuid.NewString()
	}
	if r.Version == 0 {
		r.Version = 1
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	r.fillItemIDs()
}

func (r *StructuredResume) fillItemIDs() {
	for i := range r.Experience {
		if r.Experience[i].ID == "" {
			r.Experience[i].ID = fmt.Sprintf("exp-%d", i+1)
		}
	}
	for i := range r.Education {
		if r.Education[i].ID == "" {
			r.Education[i].ID = fmt.Sprintf("edu-%d", i+1)
		}
	}
	for i := range r.Certifications {
		if r.Certifications[i].ID == "" {
			r.Certifications[i].ID = fmt.Sprintf("cert-%d", i+1)
		}
	}
	for i := range r.Projects {
		if r.Projects[i].ID == "" {
			r.Projects[i].ID = fmt.Sprintf("proj-%d", i+1)
		}
	}
}

// Validate enforces required fields and per-resume id uniqueness.
func (r StructuredResume) Validate() error {
	if strings.TrimSpace(r.ContactInfo.Name) == "" {
		return errors.New("contactInfo.name is required")
	}
	seen := make(map[string]string)
	check := func(kind, id string, index int) error {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%s[%d].id is required", kind, index)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%s[%d].id %q duplicates %s", kind, index, id, prev)
		}
		seen[id] = fmt.Sprintf("%s[%d]", kind, index)
		return nil
	}
	for i, exp := range r.Experience {
		if err := check("experience", exp.ID, i); err != nil {
			return err
		}
		if strings.TrimSpace(exp.Company) == "" {
			return fmt.Errorf("experience[%d].company is required", i)
		}
		if strings.TrimSpace(exp.Title) == "" {
			return fmt.Errorf("experience[%d].title is required", i)
		}
	}
	for i, edu := range r.Education {
		if err := check("education", edu.ID, i); err != nil {
			return err
		}
	}
	for i, cert := range r.Certifications {
		if err := check("certifications", cert.ID, i); err != nil {
			return err
		}
	}
	for i, project := range r.Projects {
		if err := check("projects", project.ID, i); err != nil {
			return err
		}
	}
	return nil
}
