package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/fullbootcamp/pos-saas-sub000/internal/dto"
	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
	"github.com/fullbootcamp/pos-saas-sub000/internal/onboarding"
	"github.com/fullbootcamp/pos-saas-sub000/internal/repository"
)

// maxSlugAttempts bounds the suffix search so concurrent identical store
// names cannot spin forever; the unique index is the real arbiter.
const maxSlugAttempts = 100

type StoreService interface {
	Create(ctx context.Context, acct *model.Account, req dto.CreateStoreRequest) (*dto.CreateStoreResponse, error)
}

type storeService struct {
	stores repository.StoreRepository
}

func NewStoreService(stores repository.StoreRepository) StoreService {
	return &storeService{stores: stores}
}

func (s *storeService) Create(ctx context.Context, acct *model.Account, req dto.CreateStoreRequest) (*dto.CreateStoreResponse, error) {
	base := slug.Make(req.StoreName)
	if base == "" {
		base = "store"
	}

	locations := buildLocations(req)

	for i := 0; i < maxSlugAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := s.stores.SlugExists(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		store := &model.Store{
			Name:      req.StoreName,
			Slug:      candidate,
			Type:      req.StoreType,
			AccountID: acct.ID,
		}
		err = s.stores.CreateWithLocations(ctx, store, locations)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race for this slug; try the next suffix.
			continue
		}
		if err != nil {
			return nil, err
		}

		acct.StoreSetupComplete = true
		return &dto.CreateStoreResponse{
			StoreID:    store.ID.String(),
			Slug:       store.Slug,
			RedirectTo: onboarding.RedirectTarget(acct),
		}, nil
	}
	return nil, ErrSlugExhausted
}

// buildLocations turns the request into location rows: explicit payloads
// are used as given, otherwise one default plus N-1 synthesized extras.
// The first location is always the store's default.
func buildLocations(req dto.CreateStoreRequest) []model.Location {
	if len(req.Locations) > 0 {
		locs := make([]model.Location, len(req.Locations))
		for i, in := range req.Locations {
			locs[i] = model.Location{
				Name:      in.Name,
				Address:   in.Address,
				Phone:     in.Phone,
				IsDefault: i == 0,
			}
		}
		return locs
	}

	count := req.LocationCount
	if count < 1 {
		count = 1
	}
	locs := make([]model.Location, count)
	locs[0] = model.Location{Name: "Main Location", IsDefault: true}
	for i := 1; i < count; i++ {
		locs[i] = model.Location{Name: fmt.Sprintf("Location %d", i+1)}
	}
	return locs
}
