// Package report implements the executor for report generation and budget
// alerts. Generated artifacts are written through the abstract file system,
// so rollback is a plain delete of the artifact.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/structology/conv"
	"github.com/viant/x"

	"github.com/viant/actiongate/extension"
	"github.com/viant/actiongate/internal/clock"
	"github.com/viant/actiongate/model/action"
)

const name = "reporting"

var supportedTypes = []action.Type{
	action.TypeGenerateReport,
	action.TypeCreateBudgetAlert,
}

// Input is the typed view over an action's parameters bag.
type Input struct {
	ReportType string   `json:"reportType"`
	Period     string   `json:"period"`
	Categories []string `json:"categories,omitempty"`
	Threshold  float64  `json:"threshold,omitempty"`
}

// Service generates report artifacts.
type Service struct {
	converter *conv.Converter
	fs        afs.Service
	baseURL   string
}

// Option customises the reporting executor.
type Option func(*Service)

// WithBaseURL sets where generated artifacts are written. When empty the
// executor produces results without persisting an artifact.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.baseURL = url.Normalize(baseURL, file.Scheme)
		}
	}
}

// New creates a reporting executor.
func New(options ...Option) *Service {
	convOptions := conv.DefaultOptions()
	convOptions.ClonePointerData = true
	convOptions.IgnoreUnmapped = true
	convOptions.AccessUnexported = true
	ret := &Service{
		converter: conv.NewConverter(convOptions),
		fs:        afs.New(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Name returns the executor name.
func (s *Service) Name() string {
	return name
}

// InitTypes registers the executor input type for host introspection.
func (s *Service) InitTypes(types *extension.Types) {
	types.Register(x.NewType(reflect.TypeOf(Input{})))
}

// CanHandle claims reporting action types and explicit overrides.
func (s *Service) CanHandle(anAction *action.ProposedAction) bool {
	if anAction.Executor == name {
		return true
	}
	for _, candidate := range supportedTypes {
		if anAction.Type == candidate {
			return true
		}
	}
	return false
}

// Validate checks the required parameters without side effects.
func (s *Service) Validate(_ context.Context, anAction *action.ProposedAction) (bool, string) {
	input, err := s.input(anAction)
	if err != nil {
		return false, err.Error()
	}
	if input.ReportType == "" {
		return false, "missing required parameter: reportType"
	}
	if anAction.Type == action.TypeCreateBudgetAlert && input.Threshold <= 0 {
		return false, "missing required parameter: threshold"
	}
	return true, ""
}

// Execute generates (or previews) the report artifact. A real run persists
// the artifact and records its URL so rollback can remove it.
func (s *Service) Execute(ctx context.Context, anAction *action.ProposedAction, dryRun bool) (*action.Result, error) {
	input, err := s.input(anAction)
	if err != nil {
		return nil, err
	}

	artifactURL := s.artifactURL(anAction, input)
	var summary string
	if dryRun {
		summary = fmt.Sprintf("Would generate %v report for %v", input.ReportType, periodOrDefault(input.Period))
	} else {
		summary = fmt.Sprintf("Generated %v report for %v", input.ReportType, periodOrDefault(input.Period))
		if artifactURL != "" {
			if err = s.writeArtifact(ctx, artifactURL, anAction, input); err != nil {
				return nil, fmt.Errorf("failed to write report artifact %v: %w", artifactURL, err)
			}
		}
	}

	details := map[string]interface{}{
		"reportType": input.ReportType,
		"period":     periodOrDefault(input.Period),
	}
	if len(input.Categories) > 0 {
		details["categories"] = input.Categories
	}
	if input.Threshold > 0 {
		details["threshold"] = input.Threshold
	}
	if artifactURL != "" {
		details["artifactURL"] = artifactURL
	}

	finished := clock.Now()
	return &action.Result{
		ActionID:          anAction.ID,
		Status:            action.StatusCompleted,
		Summary:           summary,
		Details:           details,
		DryRun:            dryRun,
		RollbackAvailable: artifactURL != "",
		StartedAt:         clock.Now(),
		FinishedAt:        &finished,
	}, nil
}

// Rollback deletes the artifact recorded by the prior execution. Dry runs
// wrote nothing, so a missing artifact counts as already removed.
func (s *Service) Rollback(ctx context.Context, anAction *action.ProposedAction, prior *action.Result) (*action.Result, error) {
	artifactURL, _ := prior.Details["artifactURL"].(string)
	finished := clock.Now()
	if artifactURL == "" {
		return &action.Result{
			ActionID:          anAction.ID,
			Status:            action.StatusFailed,
			Summary:           "Cannot roll back - no artifact was recorded",
			Error:             "no_original_data",
			RollbackAvailable: false,
			StartedAt:         clock.Now(),
			FinishedAt:        &finished,
		}, nil
	}
	if ok, _ := s.fs.Exists(ctx, artifactURL); ok {
		if err := s.fs.Delete(ctx, artifactURL); err != nil {
			return nil, fmt.Errorf("failed to delete report artifact %v: %w", artifactURL, err)
		}
	}
	return &action.Result{
		ActionID:          anAction.ID,
		Status:            action.StatusRolledBack,
		Summary:           fmt.Sprintf("Removed report artifact %v", artifactURL),
		Details:           map[string]interface{}{"artifactURL": artifactURL},
		RollbackAvailable: false,
		StartedAt:         clock.Now(),
		FinishedAt:        &finished,
	}, nil
}

func (s *Service) artifactURL(anAction *action.ProposedAction, input *Input) string {
	if s.baseURL == "" {
		return ""
	}
	kind := strings.ReplaceAll(strings.ToLower(input.ReportType), " ", "_")
	return url.Join(s.baseURL, fmt.Sprintf("%v-%v.json", kind, anAction.ID))
}

func (s *Service) writeArtifact(ctx context.Context, artifactURL string, anAction *action.ProposedAction, input *Input) error {
	artifact := map[string]interface{}{
		"actionID":    anAction.ID,
		"title":       anAction.Title,
		"reportType":  input.ReportType,
		"period":      periodOrDefault(input.Period),
		"categories":  input.Categories,
		"threshold":   input.Threshold,
		"generatedAt": clock.Now(),
	}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	return s.fs.Upload(ctx, artifactURL, file.DefaultFileOsMode, strings.NewReader(string(data)))
}

func (s *Service) input(anAction *action.ProposedAction) (*Input, error) {
	input := &Input{}
	if err := s.converter.Convert(anAction.Parameters, input); err != nil {
		return nil, fmt.Errorf("invalid report parameters: %w", err)
	}
	return input, nil
}

func periodOrDefault(period string) string {
	if period == "" {
		return "current period"
	}
	return period
}
