package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Khan-Yazdani04/devconnect-lite/logging"
	"github.com/Khan-Yazdani04/devconnect-lite/metrics"
)

// SweepService removes bids left behind when a project delete succeeded but
// the bid cleanup that follows it did not.
type SweepService struct {
	projects ProjectStore
	bids     BidStore
	metrics  *metrics.Metrics
}

func NewSweepService(projects ProjectStore, bids BidStore, m *metrics.Metrics) *SweepService {
	return &SweepService{projects: projects, bids: bids, metrics: m}
}

// SweepOrphanBids deletes every bid whose project no longer exists and returns
// how many were removed.
func (s *SweepService) SweepOrphanBids(ctx context.Context) (int64, error) {
	referenced, err := s.bids.DistinctBidProjects(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}
	if len(referenced) == 0 {
		return 0, nil
	}

	existing, err := s.projects.ExistingProjectIDs(ctx, referenced)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}

	live := make(map[primitive.ObjectID]struct{}, len(existing))
	for _, id := range existing {
		live[id] = struct{}{}
	}
	orphaned := make([]primitive.ObjectID, 0)
	for _, id := range referenced {
		if _, ok := live[id]; !ok {
			orphaned = append(orphaned, id)
		}
	}
	if len(orphaned) == 0 {
		logging.Logger.Debug("Event ID: SWEEP_NOTHING_TO_DO, Description: No orphaned bids found")
		return 0, nil
	}

	removed, err := s.bids.DeleteBidsByProjects(ctx, orphaned)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}

	s.metrics.RecordOrphanBidsRemoved(removed)
	logging.Logger.Infof("Event ID: SWEEP_COMPLETED, Description: Removed %d orphaned bids across %d deleted projects", removed, len(orphaned))
	return removed, nil
}
