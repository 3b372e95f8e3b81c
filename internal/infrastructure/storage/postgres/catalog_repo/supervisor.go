package catalog_repo

import (
	"loomledger/internal/domain/catalogs/supervisor"
	"loomledger/internal/infrastructure/storage/postgres"
)

const supervisorTable = "cat_supervisors"

// SupervisorRepo implements supervisor.Repository. Lookups by
// supervisor ID go through the base GetByCode/ExistsByCode.
type SupervisorRepo struct {
	*BaseCatalogRepo[*supervisor.Supervisor]
}

// NewSupervisorRepo creates a new supervisor repository.
func NewSupervisorRepo(txManager *postgres.TxManager) *SupervisorRepo {
	return &SupervisorRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*supervisor.Supervisor](
			txManager,
			supervisorTable,
			postgres.ExtractDBColumns[supervisor.Supervisor](),
			func() *supervisor.Supervisor { return &supervisor.Supervisor{} },
		),
	}
}
