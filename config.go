package actiongate

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/service/approval"
)

// GateConfig configures the approval gate.
type GateConfig struct {
	Disabled          bool             `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	AutoApproveGreen  *bool            `yaml:"autoApproveGreen,omitempty" json:"autoApproveGreen,omitempty"`
	AutoApproveYellow *bool            `yaml:"autoApproveYellow,omitempty" json:"autoApproveYellow,omitempty"`
	Rules             []*approval.Rule `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// EngineConfig configures the execution engine.
type EngineConfig struct {
	MaxActionsPerRun int   `yaml:"maxActionsPerRun,omitempty" json:"maxActionsPerRun,omitempty"`
	DryRunByDefault  *bool `yaml:"dryRunByDefault,omitempty" json:"dryRunByDefault,omitempty"`
}

// ReportConfig configures the reporting executor.
type ReportConfig struct {
	// BaseURL is where report artifacts are written; empty disables
	// artifact persistence.
	BaseURL string `yaml:"baseURL,omitempty" json:"baseURL,omitempty"`
}

// Config is the service configuration.
type Config struct {
	Gate    GateConfig   `yaml:"gate,omitempty" json:"gate,omitempty"`
	Engine  EngineConfig `yaml:"engine,omitempty" json:"engine,omitempty"`
	Reports ReportConfig `yaml:"reports,omitempty" json:"reports,omitempty"`
}

// DefaultConfig returns the conservative defaults: dry-run on, 50 actions per
// run, green and yellow auto-approval enabled.
func DefaultConfig() *Config {
	enabled := true
	dryRun := true
	return &Config{
		Gate: GateConfig{
			AutoApproveGreen:  &enabled,
			AutoApproveYellow: &enabled,
		},
		Engine: EngineConfig{
			MaxActionsPerRun: 50,
			DryRunByDefault:  &dryRun,
		},
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Engine.MaxActionsPerRun < 0 {
		return fmt.Errorf("invalid maxActionsPerRun: %v", c.Engine.MaxActionsPerRun)
	}
	seen := map[action.ApprovalLevel]bool{}
	for i, rule := range c.Gate.Rules {
		if rule == nil {
			return fmt.Errorf("invalid rule at index %v: nil", i)
		}
		if !rule.Level.IsValid() {
			return fmt.Errorf("invalid rule level: %q", rule.Level)
		}
		if seen[rule.Level] {
			return fmt.Errorf("duplicate rule for level: %q", rule.Level)
		}
		seen[rule.Level] = true
		if rule.RequireAll && len(rule.Approvers) == 0 {
			return fmt.Errorf("rule for level %q requires all approvers but names none", rule.Level)
		}
	}
	return nil
}

// LoadConfig reads and validates a YAML configuration from the supplied URL.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %v: %w", URL, err)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return config, nil
}
