package handlers

import (
	"loomledger/internal/domain/catalogs/supervisor"
	"loomledger/internal/infrastructure/http/v1/dto"
)

// SupervisorHTTPHandler is the concrete catalog handler for supervisors.
type SupervisorHTTPHandler = CatalogHandler[
	*supervisor.Supervisor,
	dto.CreateSupervisorRequest,
	dto.UpdateSupervisorRequest,
]

// NewSupervisorHandler wires the generic catalog handler for supervisors.
func NewSupervisorHandler(
	base *BaseHandler,
	service *supervisor.Service,
) *SupervisorHTTPHandler {

	config := CatalogHandlerConfig[
		*supervisor.Supervisor,
		dto.CreateSupervisorRequest,
		dto.UpdateSupervisorRequest,
	]{
		Service:    service,
		EntityName: "supervisor",

		MapCreateDTO: func(req dto.CreateSupervisorRequest) *supervisor.Supervisor {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateSupervisorRequest, existing *supervisor.Supervisor) *supervisor.Supervisor {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *supervisor.Supervisor) any {
			return dto.FromSupervisor(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
