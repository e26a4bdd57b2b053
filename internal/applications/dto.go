package applications

import (
	"time"

	"jobtrack-backend/resume/model"
)

// CreateRequest is the payload for creating an application.
type CreateRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	SalaryRange  *string  `json:"salaryRange"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Source       string   `json:"source"`
	SourceURL    string   `json:"sourceUrl"`
	RawText      string   `json:"rawText"`
}

func (r CreateRequest) posting() JobPosting {
	return JobPosting{
		Title:        r.Title,
		Company:      r.Company,
		SalaryRange:  r.SalaryRange,
		Description:  r.Description,
		Requirements: r.Requirements,
		Source:       r.Source,
		SourceURL:    r.SourceURL,
		RawText:      r.RawText,
	}
}

// UpdateRequest carries the patchable application fields; nil means "leave as is".
type UpdateRequest struct {
	CustomizedResume     *string                 `json:"customizedResume"`
	StructuredResume     *model.StructuredResume `json:"structuredResume"`
	CustomizationSummary *string                 `json:"customizationSummary"`
	Status               *string                 `json:"status"`
	Stage                *Stage                  `json:"stage"`
}

// JobPostingUpdate carries the editable posting headline fields.
type JobPostingUpdate struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	SalaryRange *string `json:"salaryRange"`
}

// ActivityInput is the payload for adding a timeline activity.
type ActivityInput struct {
	Date  time.Time    `json:"date"`
	Type  ActivityType `json:"type"`
	Title string       `json:"title"`
	Notes string       `json:"notes"`
}

// EmailMatch is a parsed inbound email to link against tracked applications.
type EmailMatch struct {
	Company   string    `json:"company"`
	EmailType string    `json:"emailType"`
	Subject   string    `json:"subject"`
	Date      time.Time `json:"date"`
}

// ProcessRequest supplies the master resume context for processing.
type ProcessRequest struct {
	MasterResume string   `json:"masterResume"`
	Skills       []string `json:"skills"`
}

// SetStageRequest selects the pipeline stage.
type SetStageRequest struct {
	Stage Stage `json:"stage"`
}
