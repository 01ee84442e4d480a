package services

import (
	"go.uber.org/zap"

	"github.com/jakechorley/team-matcher/internal/config"
	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

// DemandResult summarises how the students ranked the projects
type DemandResult struct {
	Input     *Input
	Projects  []ProjectDemand
	Histogram []DemandBucket

	// Teams is how many teams the students can fill under the quota
	Teams int
}

// DemandReport loads the input and reports per-project demand without matching.
// It succeeds even when the input is infeasible so the report can show why.
func DemandReport(loader InputLoader, cfg *config.Config, logger *zap.Logger) (*DemandResult, error) {
	input, err := LoadInput(loader, cfg, logger)
	if err != nil {
		return nil, err
	}

	result := &DemandResult{
		Input:     input,
		Projects:  Demand(input.Projects, input.Students, input.Quota),
		Histogram: DemandHistogram(input.Projects, input.Students),
		Teams:     matcher.TeamCount(input.Students, input.Quota),
	}

	logger.Debug("Computed demand",
		zap.Int("projects", len(result.Projects)),
		zap.Int("feasible", len(input.Feasible)),
		zap.Int("teams", result.Teams))

	return result, nil
}
