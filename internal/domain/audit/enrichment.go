// Package audit records who changed what: it stamps CreatedBy/UpdatedBy
// on documents and keeps a deletion log for receipts.
package audit

import (
	"context"

	appctx "loomledger/internal/core/context"
)

// EnrichCreatedBy sets CreatedBy and UpdatedBy from the context user.
// Use in before-create hooks. No-op when the request is unauthenticated.
func EnrichCreatedBy(ctx context.Context, createdBy, updatedBy *string) {
	userID := appctx.GetUserID(ctx)
	if userID != "" && createdBy != nil && updatedBy != nil {
		*createdBy = userID
		*updatedBy = userID
	}
}

// EnrichUpdatedBy sets only UpdatedBy from the context user.
// Use in before-update hooks.
func EnrichUpdatedBy(ctx context.Context, updatedBy *string) {
	userID := appctx.GetUserID(ctx)
	if userID != "" && updatedBy != nil {
		*updatedBy = userID
	}
}
