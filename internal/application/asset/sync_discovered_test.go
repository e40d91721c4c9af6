package asset

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NarenDawar/ai-governance-hub/internal/application/audit"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type fakeAssetRepo struct {
	ports.AssetRepository
	seenDiscoveredIDs map[string]bool
	created           []*domain.Asset
}

func (f *fakeAssetRepo) Create(_ context.Context, a *domain.Asset) error {
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAssetRepo) CreateDiscovered(_ context.Context, assets []*domain.Asset) (int, error) {
	if f.seenDiscoveredIDs == nil {
		f.seenDiscoveredIDs = make(map[string]bool)
	}
	count := 0
	for _, a := range assets {
		if f.seenDiscoveredIDs[a.DiscoveredID] {
			continue
		}
		f.seenDiscoveredIDs[a.DiscoveredID] = true
		f.created = append(f.created, a)
		count++
	}
	return count, nil
}

type fakeVendorRepo struct {
	ports.VendorRepository
	byID  map[domain.VendorID]*domain.Vendor
	orgID domain.OrganizationID
}

func (f *fakeVendorRepo) GetByID(_ context.Context, orgID domain.OrganizationID, id domain.VendorID) (*domain.Vendor, error) {
	if orgID != f.orgID {
		return nil, nil
	}
	return f.byID[id], nil
}

type fakeAuditRepo struct {
	ports.AuditLogRepository
	entries []*domain.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, e *domain.AuditLog) error {
	f.entries = append(f.entries, e)
	return nil
}

func testScope() domain.Scope {
	return domain.Scope{
		UserID:         domain.NewUserID(uuid.New()),
		OrganizationID: domain.NewOrganizationID(uuid.New()),
		Role:           domain.RoleAdmin,
	}
}

func TestSyncDiscoveredIsIdempotent(t *testing.T) {
	scope := testScope()
	assets := &fakeAssetRepo{}
	auditRepo := &fakeAuditRepo{}
	uc := NewSyncDiscovered(assets, MockDiscoverySource{}, audit.NewRecorder(auditRepo, zerolog.Nop()))

	res, err := uc.Execute(context.Background(), SyncDiscoveredInput{Scope: scope})
	require.NoError(t, err)
	assert.Equal(t, 3, res.NewAssetCount)

	for _, a := range assets.created {
		assert.Equal(t, scope.OrganizationID, a.OrganizationID)
		assert.Equal(t, domain.RiskLow, a.RiskClassification)
		assert.Equal(t, domain.AssetProposed, a.Status)
		assert.NotEmpty(t, a.DiscoveredID)
	}

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, domain.ActionAutoDiscoveryCompleted, auditRepo.entries[0].Action)
	assert.Equal(t, "Auto-discovery sync completed. Found and registered 3 new asset(s).", auditRepo.entries[0].Details)
	assert.Nil(t, auditRepo.entries[0].AssetID)

	// a second run finds nothing new and writes no audit entry
	res, err = uc.Execute(context.Background(), SyncDiscoveredInput{Scope: scope})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewAssetCount)
	assert.Len(t, auditRepo.entries, 1)
}

func TestRegisterAssetRejectsForeignVendor(t *testing.T) {
	scope := testScope()
	vendors := &fakeVendorRepo{byID: map[domain.VendorID]*domain.Vendor{}, orgID: scope.OrganizationID}
	assets := &fakeAssetRepo{}
	uc := NewRegisterAsset(assets, vendors, audit.NewRecorder(&fakeAuditRepo{}, zerolog.Nop()))

	foreign := domain.NewVendorID(uuid.New())
	_, err := uc.Execute(context.Background(), RegisterAssetInput{
		Scope:              scope,
		Name:               "Resume Screener",
		Owner:              "People Ops",
		BusinessPurpose:    "Ranks inbound applications.",
		RiskClassification: domain.RiskHigh,
		VendorID:           &foreign,
	})
	assert.ErrorIs(t, err, domerrors.ErrNotFound)
	assert.Empty(t, assets.created)
}

func TestRegisterAssetWritesAuditEntry(t *testing.T) {
	scope := testScope()
	assets := &fakeAssetRepo{}
	auditRepo := &fakeAuditRepo{}
	uc := NewRegisterAsset(assets, &fakeVendorRepo{orgID: scope.OrganizationID}, audit.NewRecorder(auditRepo, zerolog.Nop()))

	a, err := uc.Execute(context.Background(), RegisterAssetInput{
		Scope:              scope,
		Name:               "Resume Screener",
		Owner:              "People Ops",
		BusinessPurpose:    "Ranks inbound applications.",
		RiskClassification: domain.RiskHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AssetProposed, a.Status)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, domain.ActionAssetCreated, auditRepo.entries[0].Action)
	assert.Equal(t, `Asset "Resume Screener" was registered.`, auditRepo.entries[0].Details)
	require.NotNil(t, auditRepo.entries[0].AssetID)
	assert.Equal(t, a.ID, *auditRepo.entries[0].AssetID)
}
