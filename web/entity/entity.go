// Package entity defines the wire shapes shared by the web controllers.
package entity

// ErrorMsg is the body of every non-2xx response. The client surfaces
// Message verbatim; internal detail stays in the server log.
type ErrorMsg struct {
	Message string `json:"message"`
}

// LoginForm is the credential pair posted to /auth/login.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
