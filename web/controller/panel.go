package controller

import (
	"net/http"

	"sgi-panel/config"
	"sgi-panel/database"
	"sgi-panel/database/model"
	"sgi-panel/logger"
	"sgi-panel/web/middleware"
	"sgi-panel/web/screen"
	"sgi-panel/web/service"
	"sgi-panel/web/ui"

	"github.com/gin-gonic/gin"
)

// PanelController serves the metadata-driven list and edit views: the
// screens supply descriptors, the engines do the rendering, and no handler
// here knows anything about a specific entity.
type PanelController struct {
	svc   service.CatalogService
	form  ui.FormEngine
	table ui.TableEngine
}

func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}

	panel := g.Group("/panel")
	panel.GET("/resumen", a.resumen)
	panel.GET("/logs", middleware.AuthRequired(), middleware.RequireAdmin(), a.logs)
	panel.GET("/:entity", a.listView)
	panel.GET("/:entity/form", a.formView)
	panel.POST("/:entity/form", a.submit)

	return a
}

// tableResponse is one page of a rendered list view.
type tableResponse struct {
	Title      string       `json:"title"`
	Subtitle   string       `json:"subtitle"`
	Headers    []string     `json:"headers"`
	Rows       []ui.RowView `json:"rows"`
	Empty      bool         `json:"empty"`
	Message    string       `json:"message,omitempty"`
	Total      int          `json:"total"`
	Filtered   int          `json:"filtered"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	RangeStart int          `json:"rangeStart"`
	RangeEnd   int          `json:"rangeEnd"`
}

func (a *PanelController) listView(c *gin.Context) {
	scr, ok := screen.Lookup(c.Param("entity"))
	if !ok {
		jsonError(c, http.StatusNotFound, service.ErrUnknownEntity.Error(), nil)
		return
	}

	_, columns, err := scr.Build(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "No se pudo preparar la vista", err)
		return
	}
	data, err := a.svc.List(c.Request.Context(), scr.Schema.Name)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "No se pudo consultar el catálogo", err)
		return
	}

	view := a.table.BuildView(columns, data, scr.Schema.IDField, c.Query("q"))

	// the dataset was just reloaded, so the paginator starts at page one
	// and then jumps to the requested page, clamped
	pager := ui.NewPaginator(view.Rows, intQuery(c, "pageSize", config.GetPageSize()))
	pager.GoToPage(intQuery(c, "page", 1))
	start, end := pager.Range()

	jsonObj(c, tableResponse{
		Title:      scr.Title,
		Subtitle:   scr.Subtitle,
		Headers:    view.Headers,
		Rows:       pager.Items(),
		Empty:      view.Empty,
		Message:    view.Message,
		Total:      view.Total,
		Filtered:   view.Filtered,
		Page:       pager.Page(),
		TotalPages: pager.TotalPages(),
		RangeStart: start,
		RangeEnd:   end,
	})
}

func (a *PanelController) formView(c *gin.Context) {
	scr, ok := screen.Lookup(c.Param("entity"))
	if !ok {
		jsonError(c, http.StatusNotFound, service.ErrUnknownEntity.Error(), nil)
		return
	}

	fields, _, err := scr.Build(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "No se pudo preparar el formulario", err)
		return
	}

	var initial model.Record
	if id := c.Query("id"); id != "" {
		initial, err = a.svc.Find(c.Request.Context(), scr.Schema.Name, id)
		if err != nil {
			if database.IsNotFound(err) {
				jsonError(c, http.StatusNotFound, "Registro no encontrado", nil)
			} else {
				jsonError(c, http.StatusInternalServerError, "No se pudo consultar el registro", err)
			}
			return
		}
	}

	jsonObj(c, gin.H{
		"title":  scr.Title,
		"fields": a.form.Render(fields, initial).Fields,
	})
}

// submit runs the posted values through the form engine, applies the
// screen's derivation and persists: create when no id is supplied, merge
// update otherwise.
func (a *PanelController) submit(c *gin.Context) {
	scr, ok := screen.Lookup(c.Param("entity"))
	if !ok {
		jsonError(c, http.StatusNotFound, service.ErrUnknownEntity.Error(), nil)
		return
	}

	fields, _, err := scr.Build(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "No se pudo preparar el formulario", err)
		return
	}

	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		jsonError(c, http.StatusBadRequest, "Formulario inválido", err)
		return
	}

	rec, err := a.form.Submit(fields, values)
	if err != nil {
		// validation stays client-facing, verbatim
		jsonError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if scr.Transform != nil {
		rec = scr.Transform(rec)
	}

	catalog := &CatalogController{svc: a.svc}
	if id := c.Query("id"); id != "" {
		updated, err := a.svc.Update(c.Request.Context(), scr.Schema.Name, id, rec)
		if err != nil {
			catalog.fail(c, "No se pudo actualizar el registro", err)
			return
		}
		jsonObj(c, updated)
		return
	}

	stored, err := a.svc.Create(c.Request.Context(), scr.Schema.Name, rec)
	if err != nil {
		catalog.fail(c, "No se pudo crear el registro", err)
		return
	}
	jsonObj(c, stored)
}

// logs returns recent server log lines, newest first.
func (a *PanelController) logs(c *gin.Context) {
	count := intQuery(c, "count", 50)
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, logger.GetLogs(count, level))
}

// resumen returns the per-catalog record counts for the dashboard cards.
func (a *PanelController) resumen(c *gin.Context) {
	counts := make(map[string]int, len(model.Catalogs()))
	for _, schema := range model.Catalogs() {
		rows, err := a.svc.List(c.Request.Context(), schema.Name)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "No se pudo consultar el resumen", err)
			return
		}
		counts[schema.Name] = len(rows)
	}
	jsonObj(c, counts)
}
