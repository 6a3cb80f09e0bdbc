package controller

import (
	"errors"
	"net/http"

	"sgi-panel/config"
	"sgi-panel/database/model"
	"sgi-panel/logger"
	"sgi-panel/web/entity"
	"sgi-panel/web/middleware"
	"sgi-panel/web/screen"
	"sgi-panel/web/service"
	"sgi-panel/web/session"
	"sgi-panel/web/ui"

	"github.com/gin-gonic/gin"
)

// AuthController serves login/logout and the account administration routes.
type AuthController struct {
	svc  *service.CredentialService
	form ui.FormEngine
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{svc: service.NewCredentialService()}

	auth := g.Group("/auth")
	auth.POST("/login", a.login)
	auth.POST("/logout", a.logout)
	auth.POST("/seed", a.seed)

	users := auth.Group("/users")
	users.Use(middleware.AuthRequired(), middleware.RequireAdmin())
	{
		users.GET("", a.list)
		users.GET("/form", a.userForm)
		users.POST("", a.create)
		users.DELETE("/:id", a.remove)
	}

	return a
}

func (a *AuthController) login(c *gin.Context) {
	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Credenciales inválidas", err)
		return
	}

	user, err := a.svc.ValidateCredential(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		logger.Warningf("failed login attempt for %q from %s",
			model.NormalizeUsername(form.Username), getRemoteIp(c))
		jsonError(c, http.StatusUnauthorized, service.ErrBadCredentials.Error(), nil)
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		jsonError(c, http.StatusInternalServerError, "No se pudo iniciar la sesión", err)
		return
	}
	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("set session max age:", err)
	}
	logger.Infof("user %q logged in from %s", user.Username, getRemoteIp(c))
	jsonObj(c, user)
}

func (a *AuthController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("user %q logged out", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		jsonError(c, http.StatusInternalServerError, "No se pudo cerrar la sesión", err)
		return
	}
	jsonAck(c)
}

func (a *AuthController) seed(c *gin.Context) {
	rec, created, err := a.svc.SeedCredential(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "No se pudo crear la cuenta inicial", err)
		return
	}
	if created {
		jsonObj(c, rec)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seeded": false})
}

func (a *AuthController) list(c *gin.Context) {
	users, err := a.svc.ListCredentials(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "No se pudo consultar las cuentas", err)
		return
	}
	jsonObj(c, users)
}

// userForm renders the account form schema through the form engine.
func (a *AuthController) userForm(c *gin.Context) {
	jsonObj(c, a.form.Render(screen.Usuarios(), nil))
}

func (a *AuthController) create(c *gin.Context) {
	var input model.Record
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, "Cuenta inválida", err)
		return
	}
	rec, err := a.svc.CreateCredential(c.Request.Context(), input)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		jsonError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrDuplicateUsername):
		jsonError(c, http.StatusConflict, err.Error(), nil)
	case err != nil:
		jsonError(c, http.StatusInternalServerError, "No se pudo crear la cuenta", err)
	default:
		jsonObj(c, rec)
	}
}

// remove deletes an account but refuses to touch the seeded master one.
// That policy lives here at the boundary, not inside the delete primitive.
func (a *AuthController) remove(c *gin.Context) {
	id := c.Param("id")

	rec, err := a.svc.FindCredential(c.Request.Context(), id)
	if err == nil && rec.Username == model.AdminUsername {
		jsonError(c, http.StatusBadRequest, "La cuenta maestra no puede eliminarse", nil)
		return
	}

	if err := a.svc.RemoveCredential(c.Request.Context(), id); err != nil {
		jsonError(c, http.StatusInternalServerError, "No se pudo eliminar la cuenta", err)
		return
	}
	jsonAck(c)
}
