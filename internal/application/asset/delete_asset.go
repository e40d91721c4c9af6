package asset

import (
	"context"
	"fmt"

	"github.com/NarenDawar/ai-governance-hub/internal/application/audit"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type DeleteAssetInput struct {
	Scope   domain.Scope
	AssetID domain.AssetID
}

type DeleteAsset struct {
	assets   ports.AssetRepository
	recorder *audit.Recorder
}

func NewDeleteAsset(assets ports.AssetRepository, recorder *audit.Recorder) *DeleteAsset {
	return &DeleteAsset{assets: assets, recorder: recorder}
}

// Execute removes an asset and its dependent assessments. The audit entry
// outlives the asset, so it carries no asset reference.
func (uc *DeleteAsset) Execute(ctx context.Context, input DeleteAssetInput) error {
	a, err := uc.assets.GetByID(ctx, input.Scope.OrganizationID, input.AssetID)
	if err != nil {
		return err
	}
	if a == nil {
		return domerrors.ErrNotFound
	}
	if err := uc.assets.Delete(ctx, input.Scope.OrganizationID, input.AssetID); err != nil {
		return err
	}

	uc.recorder.Record(ctx, domain.ActionAssetDeleted,
		fmt.Sprintf("Asset %q was deleted.", a.Name), nil, input.Scope.UserID)
	return nil
}
