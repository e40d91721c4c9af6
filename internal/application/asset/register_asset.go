// Package asset contains the AI-asset inventory use-cases.
package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NarenDawar/ai-governance-hub/internal/application/audit"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type RegisterAssetInput struct {
	Scope              domain.Scope
	Name               string
	Owner              string
	BusinessPurpose    string
	RiskClassification domain.RiskLevel
	VendorID           *domain.VendorID
}

type RegisterAsset struct {
	assets   ports.AssetRepository
	vendors  ports.VendorRepository
	recorder *audit.Recorder
}

func NewRegisterAsset(assets ports.AssetRepository, vendors ports.VendorRepository, recorder *audit.Recorder) *RegisterAsset {
	return &RegisterAsset{assets: assets, vendors: vendors, recorder: recorder}
}

// Execute registers a new asset in the caller's organization. A vendor link,
// when given, must resolve inside the same organization.
func (uc *RegisterAsset) Execute(ctx context.Context, input RegisterAssetInput) (*domain.Asset, error) {
	if input.VendorID != nil {
		vendor, err := uc.vendors.GetByID(ctx, input.Scope.OrganizationID, *input.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, domerrors.ErrNotFound
		}
	}

	a := &domain.Asset{
		ID:                 domain.NewAssetID(uuid.New()),
		OrganizationID:     input.Scope.OrganizationID,
		Name:               input.Name,
		Owner:              input.Owner,
		BusinessPurpose:    input.BusinessPurpose,
		Status:             domain.AssetProposed,
		RiskClassification: input.RiskClassification,
		VendorID:           input.VendorID,
		DateRegistered:     time.Now().UTC(),
	}
	if err := uc.assets.Create(ctx, a); err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, domain.ActionAssetCreated,
		fmt.Sprintf("Asset %q was registered.", a.Name), &a.ID, input.Scope.UserID)
	return a, nil
}
