// Package controller provides the HTTP handlers of the SGI panel: the
// generic catalog CRUD, the account routes and the metadata-driven panel
// views.
package controller

import (
	"errors"
	"net/http"

	"sgi-panel/database"
	"sgi-panel/database/model"
	"sgi-panel/web/service"

	"github.com/gin-gonic/gin"
)

// CatalogController serves the generic per-entity CRUD routes. One route
// set covers every catalog; the entity is a path parameter resolved against
// the schema registry.
type CatalogController struct {
	svc service.CatalogService
}

func NewCatalogController(g *gin.RouterGroup) *CatalogController {
	a := &CatalogController{}

	g.GET("/:entity", a.list)
	g.POST("/:entity", a.create)
	g.PUT("/:entity/:id", a.update)
	g.DELETE("/:entity/:id", a.remove)

	return a
}

func (a *CatalogController) list(c *gin.Context) {
	rows, err := a.svc.List(c.Request.Context(), c.Param("entity"))
	if err != nil {
		a.fail(c, "No se pudo consultar el catálogo", err)
		return
	}
	jsonObj(c, rows)
}

func (a *CatalogController) create(c *gin.Context) {
	var rec model.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		jsonError(c, http.StatusBadRequest, "Registro inválido", err)
		return
	}
	stored, err := a.svc.Create(c.Request.Context(), c.Param("entity"), rec)
	if err != nil {
		a.fail(c, "No se pudo crear el registro", err)
		return
	}
	jsonObj(c, stored)
}

func (a *CatalogController) update(c *gin.Context) {
	var patch model.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		jsonError(c, http.StatusBadRequest, "Registro inválido", err)
		return
	}
	updated, err := a.svc.Update(c.Request.Context(), c.Param("entity"), c.Param("id"), patch)
	if err != nil {
		a.fail(c, "No se pudo actualizar el registro", err)
		return
	}
	jsonObj(c, updated)
}

func (a *CatalogController) remove(c *gin.Context) {
	err := a.svc.Remove(c.Request.Context(), c.Param("entity"), c.Param("id"))
	if err != nil {
		a.fail(c, "No se pudo eliminar el registro", err)
		return
	}
	jsonAck(c)
}

// fail maps backend errors onto status codes: unknown entities
// and identity problems are client errors, anything else is a backend
// failure reported generically.
func (a *CatalogController) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownEntity):
		jsonError(c, http.StatusNotFound, service.ErrUnknownEntity.Error(), nil)
	case errors.Is(err, database.ErrMissingID):
		jsonError(c, http.StatusBadRequest, "Falta el identificador del registro", nil)
	case errors.Is(err, database.ErrExists):
		jsonError(c, http.StatusConflict, "El registro ya existe", nil)
	case database.IsNotFound(err):
		jsonError(c, http.StatusNotFound, "Registro no encontrado", nil)
	default:
		jsonError(c, http.StatusInternalServerError, msg, err)
	}
}
