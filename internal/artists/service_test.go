package artists

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistly/internal/shared/apperrors"
)

type fakeRepo struct {
	artists []Artist
}

func (f *fakeRepo) Create(ctx context.Context, artist *Artist) error {
	if artist.ID == uuid.Nil {
		artist.ID = uuid.New()
	}
	f.artists = append(f.artists, *artist)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, artist *Artist) error {
	for i := range f.artists {
		if f.artists[i].ID == artist.ID {
			f.artists[i] = *artist
			return nil
		}
	}
	return apperrors.NotFound("artist not found")
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Artist, error) {
	for i := range f.artists {
		if f.artists[i].ID == id {
			return &f.artists[i], nil
		}
	}
	return nil, apperrors.NotFound("artist not found")
}

func (f *fakeRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*Artist, error) {
	for i := range f.artists {
		if f.artists[i].UserID == userID {
			return &f.artists[i], nil
		}
	}
	return nil, apperrors.NotFound("artist not found")
}

func (f *fakeRepo) GetByReferralCode(ctx context.Context, code string) (*Artist, error) {
	for i := range f.artists {
		if f.artists[i].ReferralCode == code {
			return &f.artists[i], nil
		}
	}
	return nil, apperrors.NotFound("no artist for referral code")
}

func (f *fakeRepo) GetAll(ctx context.Context) ([]Artist, error) {
	return f.artists, nil
}

func (f *fakeRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Artist, error) {
	var out []Artist
	for _, a := range f.artists {
		for _, id := range ids {
			if a.ID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := f.GetByID(ctx, id)
	return err == nil, nil
}

func newArtist(name, code string, services []string, areas []ServiceArea) Artist {
	return Artist{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		DisplayName:  name,
		ReferralCode: code,
		Services:     StringList(services),
		ServiceAreas: ServiceAreaList(areas),
	}
}

func TestMatchArtists_GeoAndServiceFilter(t *testing.T) {
	puneArea := []ServiceArea{{State: "Maharashtra", District: "Pune"}}
	mumbaiArea := []ServiceArea{{State: "Maharashtra", District: "Mumbai"}}
	bothAreas := []ServiceArea{
		{State: "Maharashtra", District: "Pune"},
		{State: "Maharashtra", District: "Mumbai"},
	}

	puneMehndi := newArtist("Pune Mehndi", "PM01", []string{"mehndi"}, puneArea)
	puneMakeup := newArtist("Pune Makeup", "PK01", []string{"makeup"}, puneArea)
	mumbaiMehndi := newArtist("Mumbai Mehndi", "MM01", []string{"mehndi"}, mumbaiArea)
	roamingBoth := newArtist("Roaming", "RB01", []string{"mehndi", "photography"}, bothAreas)

	repo := &fakeRepo{artists: []Artist{puneMehndi, puneMakeup, mumbaiMehndi, roamingBoth}}
	svc := NewService(repo)

	matched, err := svc.MatchArtists(context.Background(), "Maharashtra", "Pune", []string{"mehndi"})
	require.NoError(t, err)

	var names []string
	for _, a := range matched {
		names = append(names, a.DisplayName)
	}
	assert.ElementsMatch(t, []string{"Pune Mehndi", "Roaming"}, names)
}

func TestMatchArtists_EachArtistAppearsOnce(t *testing.T) {
	artist := newArtist("Multi", "MU01", []string{"mehndi", "makeup"}, []ServiceArea{
		{State: "Maharashtra", District: "Pune"},
	})
	repo := &fakeRepo{artists: []Artist{artist}}
	svc := NewService(repo)

	// Artist matches on both requested services; still one entry.
	matched, err := svc.MatchArtists(context.Background(), "Maharashtra", "Pune", []string{"mehndi", "makeup"})
	require.NoError(t, err)
	assert.Len(t, matched, 1)
}

func TestMatchArtists_NoMatches(t *testing.T) {
	artist := newArtist("Pune Mehndi", "PM01", []string{"mehndi"}, []ServiceArea{
		{State: "Maharashtra", District: "Pune"},
	})
	repo := &fakeRepo{artists: []Artist{artist}}
	svc := NewService(repo)

	matched, err := svc.MatchArtists(context.Background(), "Karnataka", "Bengaluru Urban", []string{"mehndi"})
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestResolveReferralCode_CaseInsensitive(t *testing.T) {
	artist := newArtist("Priya", "PRIYA10", []string{"mehndi"}, nil)
	repo := &fakeRepo{artists: []Artist{artist}}
	svc := NewService(repo)

	got, err := svc.ResolveReferralCode(context.Background(), "priya10")
	require.NoError(t, err)
	assert.Equal(t, artist.ID, got.ID)

	got, err = svc.ResolveReferralCode(context.Background(), "  PRIYA10  ")
	require.NoError(t, err)
	assert.Equal(t, artist.ID, got.ID)

	_, err = svc.ResolveReferralCode(context.Background(), "UNKNOWN")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCreateProfile_OnePerUser(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	userID := uuid.New()

	req := CreateArtistRequest{
		DisplayName:  "Priya Mehndi Studio",
		ReferralCode: "priya10",
		Services:     []string{"Mehndi", "mehndi", "Makeup"},
		ServiceAreas: []ServiceArea{{State: "Maharashtra", District: "Pune"}},
	}

	artist, err := svc.CreateProfile(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, "PRIYA10", artist.ReferralCode)
	assert.Equal(t, StringList{"mehndi", "makeup"}, artist.Services)

	_, err = svc.CreateProfile(context.Background(), userID, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindFailedPrecondition))
}

func TestCreateProfile_ReferralCodeUnique(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	req := CreateArtistRequest{
		DisplayName:  "First",
		ReferralCode: "SHARED1",
		Services:     []string{"mehndi"},
		ServiceAreas: []ServiceArea{{State: "Maharashtra", District: "Pune"}},
	}
	_, err := svc.CreateProfile(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	req.DisplayName = "Second"
	_, err = svc.CreateProfile(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindFailedPrecondition))
}

func TestDisplayNames(t *testing.T) {
	a1 := newArtist("One", "ONE1", nil, nil)
	a2 := newArtist("Two", "TWO1", nil, nil)
	repo := &fakeRepo{artists: []Artist{a1, a2}}
	svc := NewService(repo)

	names, err := svc.DisplayNames(context.Background(), []uuid.UUID{a1.ID, a2.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{a1.ID: "One", a2.ID: "Two"}, names)
}
