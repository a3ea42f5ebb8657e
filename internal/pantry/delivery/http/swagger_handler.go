package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Pantry Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListItems godoc
// @Summary List pantry items
// @Description List every item of the caller, ordered by item id descending
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Item
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /inventory [get]
func (h *PantryHandler) ListItemsDoc() {}

// CreateItem godoc
// @Summary Create pantry item
// @Description Create an item for the caller; the id and timestamps are assigned by the service
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,quantity=number,unit=string,category=string,expiryDate=string} true "Item data"
// @Success 201 {object} domain.Item
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /inventory [post]
func (h *PantryHandler) CreateItemDoc() {}

// UpdateItem godoc
// @Summary Update pantry item
// @Description Update a subset of name, quantity, unit, category and expiryDate. A null value clears the field.
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body object{name=string,quantity=number,unit=string,category=string,expiryDate=string} true "Fields to update"
// @Success 200 {object} domain.Item
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /inventory/{id} [put]
func (h *PantryHandler) UpdateItemDoc() {}

// DeleteItem godoc
// @Summary Delete pantry item
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} object{ok=bool}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /inventory/{id} [delete]
func (h *PantryHandler) DeleteItemDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and store connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *PantryHandler) HealthCheckDoc() {}
