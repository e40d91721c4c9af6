package asset

import (
	"context"
	"fmt"

	"github.com/NarenDawar/ai-governance-hub/internal/application/audit"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type UpdateAssetInput struct {
	Scope              domain.Scope
	AssetID            domain.AssetID
	Name               *string
	Owner              *string
	BusinessPurpose    *string
	Status             *domain.AssetStatus
	RiskClassification *domain.RiskLevel
	VendorID           *domain.VendorID
	ClearVendor        bool
}

type UpdateAsset struct {
	assets   ports.AssetRepository
	vendors  ports.VendorRepository
	recorder *audit.Recorder
}

func NewUpdateAsset(assets ports.AssetRepository, vendors ports.VendorRepository, recorder *audit.Recorder) *UpdateAsset {
	return &UpdateAsset{assets: assets, vendors: vendors, recorder: recorder}
}

func (uc *UpdateAsset) Execute(ctx context.Context, input UpdateAssetInput) (*domain.Asset, error) {
	a, err := uc.assets.GetByID(ctx, input.Scope.OrganizationID, input.AssetID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domerrors.ErrNotFound
	}

	if input.Name != nil {
		a.Name = *input.Name
	}
	if input.Owner != nil {
		a.Owner = *input.Owner
	}
	if input.BusinessPurpose != nil {
		a.BusinessPurpose = *input.BusinessPurpose
	}
	if input.Status != nil {
		a.Status = *input.Status
	}
	if input.RiskClassification != nil {
		a.RiskClassification = *input.RiskClassification
	}
	switch {
	case input.ClearVendor:
		a.VendorID = nil
	case input.VendorID != nil:
		vendor, err := uc.vendors.GetByID(ctx, input.Scope.OrganizationID, *input.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, domerrors.ErrNotFound
		}
		a.VendorID = input.VendorID
	}

	if err := uc.assets.Update(ctx, a); err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, domain.ActionAssetUpdated,
		fmt.Sprintf("Asset %q was updated.", a.Name), &a.ID, input.Scope.UserID)
	return a, nil
}
