package services

import (
	"log/slog"

	"bazaarlink/internal/core/domain/model/agent"
	"bazaarlink/internal/core/domain/model/kernel"
)

// AgentSelector picks the agent to hand a delivery to. Selection is pure:
// it ranks the candidates it is given and never touches storage.
type AgentSelector interface {
	// SelectNearest returns the candidate closest to pickup by great-circle
	// distance. Candidates without a reported position rank after all
	// positioned ones; if nobody has a position the first candidate wins.
	// Returns nil when candidates is empty.
	SelectNearest(pickup kernel.GeoPoint, candidates []*agent.Agent) *agent.Agent
}

var _ AgentSelector = nearestAgentSelector{}

type nearestAgentSelector struct {
	logger *slog.Logger
}

// NewNearestAgentSelector creates the haversine-based selector.
func NewNearestAgentSelector(logger *slog.Logger) AgentSelector {
	return nearestAgentSelector{
		logger: logger.With("component", "agent-selector"),
	}
}

func (s nearestAgentSelector) SelectNearest(pickup kernel.GeoPoint, candidates []*agent.Agent) *agent.Agent {
	if len(candidates) == 0 {
		return nil
	}

	var best *agent.Agent
	bestDistance := 0.0

	for _, candidate := range candidates {
		position := candidate.Position()
		if position == nil {
			continue
		}

		distance, err := pickup.DistanceKm(*position)
		if err != nil {
			s.logger.Warn("skipping candidate with unusable position",
				"agentId", candidate.ID().String(), "error", err)
			continue
		}

		// Strict less-than keeps ties stable: the earliest candidate at the
		// minimum distance wins.
		if best == nil || distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	if best == nil {
		// Nobody has reported a position yet. Falling back to the first
		// candidate beats leaving the order unassigned.
		return candidates[0]
	}

	return best
}
