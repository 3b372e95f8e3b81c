package weaver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/id"
	"loomledger/internal/domain"
)

// stubRepo returns a fixed item set from List; everything else is unused.
type stubRepo struct {
	items []*Weaver
}

func (r *stubRepo) Create(ctx context.Context, w *Weaver) error { return nil }
func (r *stubRepo) GetByID(ctx context.Context, entityID id.ID) (*Weaver, error) {
	return nil, apperror.NewNotFound("weaver", entityID.String())
}
func (r *stubRepo) GetByCode(ctx context.Context, code string) (*Weaver, error) {
	return nil, apperror.NewNotFound("weaver", code)
}
func (r *stubRepo) Update(ctx context.Context, w *Weaver) error             { return nil }
func (r *stubRepo) Delete(ctx context.Context, entityID id.ID) error        { return nil }
func (r *stubRepo) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	return nil
}
func (r *stubRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) { return false, nil }
func (r *stubRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return false, nil
}
func (r *stubRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Weaver], error) {
	return domain.ListResult[*Weaver]{
		Items:      r.items,
		TotalCount: int64(len(r.items)),
	}, nil
}

func looms(items []*Weaver) []string {
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.Code
	}
	return out
}

func TestService_List_NumericLoomOrder(t *testing.T) {
	repo := &stubRepo{items: []*Weaver{
		New("10", "Ten"),
		New("2", "Two"),
		New("1", "One"),
	}}
	svc := NewService(repo, nil)
	ctx := context.Background()

	// Default ordering is ascending by loom number, not lexicographic.
	result, err := svc.List(ctx, domain.ListFilter{OrderBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "10"}, looms(result.Items))

	result, err = svc.List(ctx, domain.ListFilter{OrderBy: "-code"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "2", "1"}, looms(result.Items))
}

func TestWeaver_Validate_LoomNo(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, New("42", "Valid").Validate(ctx))

	for _, code := range []string{"", "L-1", "4a", " 7"} {
		w := New(code, "Invalid")
		require.Error(t, w.Validate(ctx), "loom number %q must be rejected", code)
	}
}
