package matching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinlix/cleaning-marketplace/internal/provider"
)

// SlotSource answers which providers have declared availability on a date.
type SlotSource interface {
	ProviderIDsOnDate(ctx context.Context, date time.Time) ([]uuid.UUID, error)
}

type Service struct {
	slots    SlotSource
	profiles provider.Repository
}

func NewService(slots SlotSource, profiles provider.Repository) *Service {
	return &Service{
		slots:    slots,
		profiles: profiles,
	}
}

// FindAvailableProviders returns the profiles of every provider owning at
// least one availability slot on the given calendar date. Matching is by date
// only; the specific time window is settled between customer and provider
// after the request. An empty result is a valid outcome, not an error.
//
// Verified providers and higher average ratings sort first. This is a display
// ordering, not a contract; ties break arbitrarily.
func (s *Service) FindAvailableProviders(ctx context.Context, date time.Time) ([]provider.Profile, error) {
	ids, err := s.slots.ProviderIDsOnDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("providers on date: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	profiles, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load provider profiles: %w", err)
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].Verified != profiles[j].Verified {
			return profiles[i].Verified
		}
		return profiles[i].RatingAvg > profiles[j].RatingAvg
	})

	return profiles, nil
}
