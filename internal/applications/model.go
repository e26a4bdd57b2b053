package applications

import (
	"time"

	"jobtrack-backend/resume/model"
)

// Status values for an application's processing lifecycle.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusArchived   = "archived"
)

// Stage is the hiring-pipeline stage of an application.
type Stage string

const (
	StageNotApplied   Stage = "not_applied"
	StageApplied      Stage = "applied"
	StagePhoneScreen  Stage = "phone_screen"
	StageInterviewing Stage = "interviewing"
	StageFinalRound   Stage = "final_round"
	StageOffer        Stage = "offer"
	StageRejected     Stage = "rejected"
	StageWithdrawn    Stage = "withdrawn"
)

// StageOrder is the canonical pipeline ordering, used for sorting and UI.
var StageOrder = []Stage{
	StageNotApplied,
	StageApplied,
	StagePhoneScreen,
	StageInterviewing,
	StageFinalRound,
	StageOffer,
	StageRejected,
	StageWithdrawn,
}

// StageLabels maps stages to display labels.
var StageLabels = map[Stage]string{
	StageNotApplied:   "Not Applied",
	StageApplied:      "Applied",
	StagePhoneScreen:  "Phone Screen",
	StageInterviewing: "Interviewing",
	StageFinalRound:   "Final Round",
	StageOffer:        "Offer",
	StageRejected:     "Rejected",
	StageWithdrawn:    "Withdrawn",
}

// ValidStage reports whether s is a known pipeline stage.
func ValidStage(s Stage) bool {
	_, ok := StageLabels[s]
	return ok
}

// ActivityType categorizes timeline activities.
type ActivityType string

const (
	ActivityCreated       ActivityType = "created"
	ActivityApplied       ActivityType = "applied"
	ActivityEmailSent     ActivityType = "email_sent"
	ActivityEmailReceived ActivityType = "email_received"
	ActivityPhoneScreen   ActivityType = "phone_screen"
	ActivityInterview     ActivityType = "interview"
	ActivityFollowUp      ActivityType = "follow_up"
	ActivityOffer         ActivityType = "offer"
	ActivityRejection     ActivityType = "rejection"
	ActivityWithdrawn     ActivityType = "withdrawn"
	ActivityNote          ActivityType = "note"
)

// ActivityTypeLabels maps activity types to display labels.
var ActivityTypeLabels = map[ActivityType]string{
	ActivityCreated:       "Created",
	ActivityApplied:       "Applied",
	ActivityEmailSent:     "Email Sent",
	ActivityEmailReceived: "Email Received",
	ActivityPhoneScreen:   "Phone Screen",
	ActivityInterview:     "Interview",
	ActivityFollowUp:      "Follow Up",
	ActivityOffer:         "Offer",
	ActivityRejection:     "Rejection",
	ActivityWithdrawn:     "Withdrawn",
	ActivityNote:          "Note",
}

// ValidActivityType reports whether t is a known activity type.
func ValidActivityType(t ActivityType) bool {
	_, ok := ActivityTypeLabels[t]
	return ok
}

// JobPosting is the tracked job opening an application targets.
type JobPosting struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	SalaryRange  *string   `json:"salaryRange"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Source       string    `json:"source"` // "text" or "url"
	SourceURL    string    `json:"sourceUrl,omitempty"`
	RawText      string    `json:"rawText"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CompanyResearch holds the model-produced company briefing.
type CompanyResearch struct {
	CompanyInfo   string    `json:"companyInfo"`
	HiringManager *string   `json:"hiringManager"`
	OrgStructure  string    `json:"orgStructure"`
	Sources       []string  `json:"sources"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Activity is one timeline entry on an application.
type Activity struct {
	ID        string       `json:"id"`
	Date      time.Time    `json:"date"`
	Type      ActivityType `json:"type"`
	Title     string       `json:"title"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Application is one tracked job application with its generated artifacts.
type Application struct {
	ID                   string                  `json:"id"`
	JobPosting           JobPosting              `json:"jobPosting"`
	CustomizedResume     *string                 `json:"customizedResume"`
	StructuredResume     *model.StructuredResume `json:"structuredResume"`
	CustomizationSummary *string                 `json:"customizationSummary"`
	MatchScore           *float64                `json:"matchScore"`
	MatchAnalysis        *string                 `json:"matchAnalysis"`
	Research             *CompanyResearch        `json:"research"`
	Status               string                  `json:"status"`
	Stage                Stage                   `json:"stage"`
	Activities           []Activity              `json:"activities"`
	CreatedAt            time.Time               `json:"createdAt"`
	UpdatedAt            time.Time               `json:"updatedAt"`
}

// Archived reports whether the application has been archived.
func (a Application) Archived() bool {
	return a.Status == StatusArchived
}

// migrate backfills stage and activities on applications persisted before
// those fields existed.
func migrate(a Application) Application {
	if a.Stage == "" {
		a.Stage = StageNotApplied
	}
	if len(a.Activities) == 0 {
		a.Activities = []Activity{{
			ID:        newID(),
			Date:      a.CreatedAt,
			Type:      ActivityCreated,
			Title:     "Application created",
			CreatedAt: a.CreatedAt,
		}}
	}
	return a
}
