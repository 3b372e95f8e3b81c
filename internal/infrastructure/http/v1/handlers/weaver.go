package handlers

import (
	"loomledger/internal/domain/catalogs/weaver"
	"loomledger/internal/infrastructure/http/v1/dto"
)

// WeaverHTTPHandler is the concrete catalog handler for weavers.
type WeaverHTTPHandler = CatalogHandler[
	*weaver.Weaver,
	dto.CreateWeaverRequest,
	dto.UpdateWeaverRequest,
]

// NewWeaverHandler wires the generic catalog handler for weavers.
func NewWeaverHandler(
	base *BaseHandler,
	service *weaver.Service,
) *WeaverHTTPHandler {

	config := CatalogHandlerConfig[
		*weaver.Weaver,
		dto.CreateWeaverRequest,
		dto.UpdateWeaverRequest,
	]{
		Service:    service,
		EntityName: "weaver",

		MapCreateDTO: func(req dto.CreateWeaverRequest) *weaver.Weaver {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateWeaverRequest, existing *weaver.Weaver) *weaver.Weaver {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *weaver.Weaver) any {
			return dto.FromWeaver(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
