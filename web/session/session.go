// Package session stores the logged-in account in the cookie session.
package session

import (
	"encoding/gob"

	"sgi-panel/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUser = "LOGIN_USER"

func init() {
	gob.Register(model.CredentialRecord{})
}

// SetLoginUser stores the sanitized credential record in the session. The
// caller strips the hash before it gets here.
func SetLoginUser(c *gin.Context, user model.CredentialRecord) error {
	s := sessions.Default(c)
	s.Set(loginUser, user.Sanitized())
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: maxAge,
	})
	return s.Save()
}

func GetLoginUser(c *gin.Context) *model.CredentialRecord {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(model.CredentialRecord); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
