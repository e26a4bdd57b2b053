// Package jobsearch shells out to the python-jobspy search script and returns
// its typed results.
package jobsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"jobtrack-backend/internal/shared/telemetry"
)

const (
	searchTimeout = 60 * time.Second
	// maxOutputBytes bounds the subprocess output buffer.
	maxOutputBytes = 10 << 20

	defaultResultsWanted = 20
	maxResultsWanted     = 50
	defaultHoursOld      = 72
)

var defaultSiteNames = []string{"indeed", "linkedin", "glassdoor"}

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoInterpreter = errors.New("no working Python 3.10+ found; install python-jobspy in a .venv or system-wide")
)

// Query is one job search request.
type Query struct {
	Keywords      string   `json:"keywords"`
	Location      string   `json:"location"`
	Remote        bool     `json:"remote"`
	JobType       *string  `json:"jobType"`
	ResultsWanted int      `json:"resultsWanted"`
	HoursOld      int      `json:"hoursOld"`
	SiteNames     []string `json:"siteNames"`
}

// normalize applies defaults and clamps.
func (q Query) normalize() Query {
	if q.ResultsWanted <= 0 {
		q.ResultsWanted = defaultResultsWanted
	}
	if q.ResultsWanted > maxResultsWanted {
		q.ResultsWanted = maxResultsWanted
	}
	if q.HoursOld <= 0 {
		q.HoursOld = defaultHoursOld
	}
	if len(q.SiteNames) == 0 {
		q.SiteNames = defaultSiteNames
	}
	return q
}

// Salary is the parsed salary of one result.
type Salary struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Period   *string  `json:"period"`
	Currency string   `json:"currency"`
	Display  *string  `json:"display"`
}

// CompanyInfo is the board-provided company metadata.
type CompanyInfo struct {
	Industry     *string `json:"industry"`
	URL          *string `json:"url"`
	Description  *string `json:"description"`
	NumEmployees *string `json:"numEmployees"`
	Revenue      *string `json:"revenue"`
}

// Result is one job search hit.
type Result struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	Salary      Salary      `json:"salary"`
	Description string      `json:"description"`
	Skills      []string    `json:"skills"`
	CompanyInfo CompanyInfo `json:"companyInfo"`
	URL         string      `json:"url"`
	DatePosted  *string     `json:"datePosted"`
	Source      string      `json:"source"`
	JobType     *string     `json:"jobType"`
	IsRemote    bool        `json:"isRemote"`
}

// Response is the full search outcome.
type Response struct {
	Results      []Result `json:"results"`
	TotalFound   int      `json:"totalFound"`
	SearchParams Query    `json:"searchParams"`
}

// scriptError is the error envelope the script prints on failure.
type scriptError struct {
	Error string `json:"error"`
}

// Service runs the search script through candidate interpreters.
type Service struct {
	ScriptPath string
	// Interpreters are tried in order; a candidate that is missing or lacks
	// the jobspy module falls through to the next one.
	Interpreters []string

	runCommand func(ctx context.Context, interpreter, script string, stdin []byte) ([]byte, []byte, error)
}

// NewService constructs a Service.
func NewService(scriptPath string, interpreters []string) *Service {
	return &Service{
		ScriptPath:   scriptPath,
		Interpreters: interpreters,
		runCommand:   runPython,
	}
}

func runPython(ctx context.Context, interpreter, script string, stdin []byte) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, interpreter, script)
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitedWriter{w: &stdout, limit: maxOutputBytes}
	cmd.Stderr = &limitedWriter{w: &stderr, limit: maxOutputBytes}

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

type limitedWriter struct {
	w     *bytes.Buffer
	limit int
	wrote int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if l.wrote >= l.limit {
		return len(p), nil
	}
	if l.wrote+len(p) > l.limit {
		p = p[:l.limit-l.wrote]
	}
	l.wrote += len(p)
	return l.w.Write(p)
}

// Search runs the query through the first interpreter that works. The whole
// attempt chain shares one 60s deadline.
func (s *Service) Search(ctx context.Context, query Query) (Response, error) {
	if strings.TrimSpace(query.Keywords) == "" {
		return Response{}, fmt.Errorf("%w: keywords is required", ErrInvalidInput)
	}
	query = query.normalize()

	input, err := json.Marshal(query)
	if err != nil {
		return Response{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	for _, interpreter := range s.Interpreters {
		stdout, stderr, err := s.runCommand(ctx, interpreter, s.ScriptPath, input)
		if err != nil {
			if interpreterUnusable(err, stderr) {
				telemetry.Info("jobsearch.interpreter_skipped", map[string]any{
					"interpreter": interpreter,
				})
				continue
			}
			if msg := strings.TrimSpace(string(stderr)); msg != "" {
				return Response{}, errors.New(msg)
			}
			return Response{}, err
		}

		var probe scriptError
		if json.Unmarshal(stdout, &probe) == nil && probe.Error != "" {
			return Response{}, errors.New(probe.Error)
		}

		var resp Response
		if err := json.Unmarshal(stdout, &resp); err != nil {
			return Response{}, fmt.Errorf("decode search output: %w", err)
		}
		return resp, nil
	}
	return Response{}, ErrNoInterpreter
}

// interpreterUnusable reports whether the failure means "try the next
// interpreter": the binary does not exist, or jobspy is not installed there.
func interpreterUnusable(err error, stderr []byte) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return true
	}
	return bytes.Contains(stderr, []byte("No module named"))
}
