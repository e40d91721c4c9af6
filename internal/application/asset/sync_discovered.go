package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NarenDawar/ai-governance-hub/internal/application/audit"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

// DiscoveredAsset is one record returned by a discovery source.
type DiscoveredAsset struct {
	DiscoveredID    string
	Name            string
	Owner           string
	BusinessPurpose string
}

// DiscoverySource lists externally visible AI assets, e.g. from a cloud
// provider inventory API.
type DiscoverySource interface {
	Discover(ctx context.Context) ([]DiscoveredAsset, error)
}

// MockDiscoverySource simulates a SageMaker inventory call. The fixed
// discovered ids make repeated syncs idempotent through the skip-duplicates
// insert.
type MockDiscoverySource struct{}

func (MockDiscoverySource) Discover(context.Context) ([]DiscoveredAsset, error) {
	return []DiscoveredAsset{
		{
			DiscoveredID:    "arn:aws:sagemaker:us-east-1:123456789012:model/fraud-detection-v3",
			Name:            "SageMaker: Fraud Detection v3",
			Owner:           "Unassigned (Discovered)",
			BusinessPurpose: "Automatically discovered from AWS SageMaker.",
		},
		{
			DiscoveredID:    "arn:aws:sagemaker:us-east-1:123456789012:model/customer-propensity-score",
			Name:            "SageMaker: Customer Propensity",
			Owner:           "Unassigned (Discovered)",
			BusinessPurpose: "Automatically discovered from AWS SageMaker.",
		},
		{
			DiscoveredID:    "pre-existing-id-for-churn-model",
			Name:            "Customer Churn Prediction Model",
			Owner:           "Marketing Analytics",
			BusinessPurpose: "Predicts which customers are likely to cancel their subscriptions.",
		},
	}, nil
}

type SyncDiscoveredInput struct {
	Scope domain.Scope
}

type SyncDiscoveredResult struct {
	NewAssetCount int
}

type SyncDiscovered struct {
	assets   ports.AssetRepository
	source   DiscoverySource
	recorder *audit.Recorder
}

func NewSyncDiscovered(assets ports.AssetRepository, source DiscoverySource, recorder *audit.Recorder) *SyncDiscovered {
	return &SyncDiscovered{assets: assets, source: source, recorder: recorder}
}

// Execute pulls the discovery source and registers every asset not already
// present in the organization. Discovered assets enter at Low risk until an
// assessment says otherwise. One audit entry covers the whole run, and only
// when it actually added something.
func (uc *SyncDiscovered) Execute(ctx context.Context, input SyncDiscoveredInput) (*SyncDiscoveredResult, error) {
	found, err := uc.source.Discover(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	toCreate := make([]*domain.Asset, 0, len(found))
	for _, d := range found {
		toCreate = append(toCreate, &domain.Asset{
			ID:                 domain.NewAssetID(uuid.New()),
			OrganizationID:     input.Scope.OrganizationID,
			Name:               d.Name,
			Owner:              d.Owner,
			BusinessPurpose:    d.BusinessPurpose,
			Status:             domain.AssetProposed,
			RiskClassification: domain.RiskLow,
			DiscoveredID:       d.DiscoveredID,
			DateRegistered:     now,
		})
	}

	count, err := uc.assets.CreateDiscovered(ctx, toCreate)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		uc.recorder.Record(ctx, domain.ActionAutoDiscoveryCompleted,
			fmt.Sprintf("Auto-discovery sync completed. Found and registered %d new asset(s).", count),
			nil, input.Scope.UserID)
	}
	return &SyncDiscoveredResult{NewAssetCount: count}, nil
}
