package artists

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"artistly/internal/shared/apperrors"
)

// Service interface defines the contract for artist profile logic
type Service interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, req CreateArtistRequest) (*Artist, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateArtistRequest) (*Artist, error)
	GetArtist(ctx context.Context, id uuid.UUID) (*Artist, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Artist, error)
	ListArtists(ctx context.Context) ([]Artist, error)

	// Lookup helpers consumed by the booking pipeline.
	ResolveReferralCode(ctx context.Context, code string) (*Artist, error)
	MatchArtists(ctx context.Context, state, district string, services []string) ([]Artist, error)
	ArtistExists(ctx context.Context, id uuid.UUID) (bool, error)
	DisplayNames(ctx context.Context, artistIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProfile(ctx context.Context, userID uuid.UUID, req CreateArtistRequest) (*Artist, error) {
	// One profile per artist account
	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return nil, apperrors.FailedPrecondition("artist profile already exists")
	} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.ReferralCode))
	if _, err := s.repo.GetByReferralCode(ctx, code); err == nil {
		return nil, apperrors.FailedPrecondition("referral code already in use")
	} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}

	artist := &Artist{
		UserID:           userID,
		DisplayName:      req.DisplayName,
		ReferralCode:     code,
		ReferralDiscount: req.ReferralDiscount,
		Services:         normalizeServices(req.Services),
		ServiceAreas:     ServiceAreaList(req.ServiceAreas),
	}

	if err := s.repo.Create(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateArtistRequest) (*Artist, error) {
	artist, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		artist.DisplayName = *req.DisplayName
	}
	if req.ReferralDiscount != nil {
		artist.ReferralDiscount = *req.ReferralDiscount
	}
	if req.Services != nil {
		artist.Services = normalizeServices(req.Services)
	}
	if req.ServiceAreas != nil {
		artist.ServiceAreas = ServiceAreaList(req.ServiceAreas)
	}
	artist.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *service) GetArtist(ctx context.Context, id uuid.UUID) (*Artist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID uuid.UUID) (*Artist, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) ListArtists(ctx context.Context) ([]Artist, error) {
	return s.repo.GetAll(ctx)
}

// ResolveReferralCode finds the artist owning a referral code. Codes are
// stored uppercase; lookup is case-insensitive.
func (s *service) ResolveReferralCode(ctx context.Context, code string) (*Artist, error) {
	return s.repo.GetByReferralCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// MatchArtists returns every artist offering at least one of the requested
// services with a service area covering {state, district}. The result is the
// fan-out audience for open jobs; each artist appears at most once.
func (s *service) MatchArtists(ctx context.Context, state, district string, services []string) ([]Artist, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []Artist
	seen := make(map[uuid.UUID]bool)
	for _, artist := range all {
		if seen[artist.ID] {
			continue
		}
		if artist.OffersAny(services) && artist.ServesArea(state, district) {
			seen[artist.ID] = true
			matched = append(matched, artist)
		}
	}
	return matched, nil
}

func (s *service) ArtistExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *service) DisplayNames(ctx context.Context, artistIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	list, err := s.repo.GetByIDs(ctx, artistIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(list))
	for _, artist := range list {
		names[artist.ID] = artist.DisplayName
	}
	return names, nil
}

func normalizeServices(in []string) StringList {
	out := make(StringList, 0, len(in))
	seen := make(map[string]bool)
	for _, svc := range in {
		svc = strings.ToLower(strings.TrimSpace(svc))
		if svc == "" || seen[svc] {
			continue
		}
		seen[svc] = true
		out = append(out, svc)
	}
	return out
}
