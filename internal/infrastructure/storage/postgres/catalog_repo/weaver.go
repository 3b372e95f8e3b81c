package catalog_repo

import (
	"loomledger/internal/domain/catalogs/weaver"
	"loomledger/internal/infrastructure/storage/postgres"
)

const weaverTable = "cat_weavers"

// WeaverRepo implements weaver.Repository. Lookups by loom number go
// through the base GetByCode/ExistsByCode.
type WeaverRepo struct {
	*BaseCatalogRepo[*weaver.Weaver]
}

// NewWeaverRepo creates a new weaver repository.
func NewWeaverRepo(txManager *postgres.TxManager) *WeaverRepo {
	return &WeaverRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*weaver.Weaver](
			txManager,
			weaverTable,
			postgres.ExtractDBColumns[weaver.Weaver](),
			func() *weaver.Weaver { return &weaver.Weaver{} },
		),
	}
}
