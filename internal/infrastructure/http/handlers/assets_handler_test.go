package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NarenDawar/ai-governance-hub/internal/application/asset"
	"github.com/NarenDawar/ai-governance-hub/internal/application/audit"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

type fakeAssetRepo struct {
	ports.AssetRepository
	byID map[domain.AssetID]*domain.Asset
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{byID: map[domain.AssetID]*domain.Asset{}}
}

func (f *fakeAssetRepo) Create(_ context.Context, a *domain.Asset) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAssetRepo) GetByID(_ context.Context, orgID domain.OrganizationID, id domain.AssetID) (*domain.Asset, error) {
	a, ok := f.byID[id]
	if !ok || a.OrganizationID != orgID {
		return nil, nil
	}
	return a, nil
}

func (f *fakeAssetRepo) List(_ context.Context, orgID domain.OrganizationID) ([]*domain.Asset, error) {
	var out []*domain.Asset
	for _, a := range f.byID {
		if a.OrganizationID == orgID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeVendorRepo struct {
	ports.VendorRepository
}

func (f *fakeVendorRepo) GetByID(_ context.Context, _ domain.OrganizationID, _ domain.VendorID) (*domain.Vendor, error) {
	return nil, nil
}

type fakeAuditRepo struct {
	ports.AuditLogRepository
	entries []*domain.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, e *domain.AuditLog) error {
	f.entries = append(f.entries, e)
	return nil
}

func newAssetsHandlerFixture() (*AssetsHandler, *fakeAssetRepo, domain.Scope) {
	assets := newFakeAssetRepo()
	recorder := audit.NewRecorder(&fakeAuditRepo{}, zerolog.Nop())
	register := asset.NewRegisterAsset(assets, &fakeVendorRepo{}, recorder)
	h := NewAssetsHandler(register, nil, nil, nil, nil, assets, nil, nil, zerolog.Nop())
	scope := domain.Scope{
		UserID:         domain.NewUserID(uuid.New()),
		OrganizationID: domain.NewOrganizationID(uuid.New()),
		Role:           domain.RoleMember,
	}
	return h, assets, scope
}

func scopedRequest(method, target, body string, scope domain.Scope) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(middleware.WithScope(r.Context(), scope))
}

func TestCreateAssetRejectsInvalidRisk(t *testing.T) {
	h, assets, scope := newAssetsHandlerFixture()

	body := `{"name":"Churn Model","owner":"data-team","businessPurpose":"churn scoring","riskClassification":"Catastrophic"}`
	w := httptest.NewRecorder()
	h.Create(w, scopedRequest(http.MethodPost, "/assets", body, scope))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid risk value")
	assert.Empty(t, assets.byID)
}

func TestCreateAssetReturnsCreated(t *testing.T) {
	h, assets, scope := newAssetsHandlerFixture()

	body := `{"name":"Churn Model","owner":"data-team","businessPurpose":"churn scoring","riskClassification":"Medium"}`
	w := httptest.NewRecorder()
	h.Create(w, scopedRequest(http.MethodPost, "/assets", body, scope))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"riskClassification":"Medium"`)
	assert.Contains(t, w.Body.String(), `"status":"Proposed"`)
	assert.Len(t, assets.byID, 1)
}

func TestGetAssetCrossTenantIsNotFound(t *testing.T) {
	h, assets, scope := newAssetsHandlerFixture()

	foreign := &domain.Asset{
		ID:             domain.NewAssetID(uuid.New()),
		OrganizationID: domain.NewOrganizationID(uuid.New()),
		Name:           "Other Org Model",
	}
	assets.byID[foreign.ID] = foreign

	r := scopedRequest(http.MethodGet, "/assets/"+foreign.ID.String(), "", scope)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("assetID", foreign.ID.String())
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.Get(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
