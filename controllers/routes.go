package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/streamnexus/nexusbackend/middleware"
)

// Access is the level a route requires.
type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

func (a Access) String() string {
	switch a {
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

type Route struct {
	Method  string
	Path    string
	Access  Access
	Handler gin.HandlerFunc
}

// Routes is the single table of API endpoints and who may call them.
func (a *App) Routes() []Route {
	return []Route{
		{http.MethodPost, "/api/auth/register", Public, a.Register()},
		{http.MethodPost, "/api/auth/login", Public, a.Login()},
		{http.MethodGet, "/api/auth/verify", Authenticated, a.Verify()},
		{http.MethodPost, "/api/auth/logout", Authenticated, a.Logout()},
		{http.MethodPut, "/api/auth/password", Authenticated, a.ChangeMyPassword()},

		{http.MethodGet, "/api/movies", Public, a.GetMovies()},
		{http.MethodGet, "/api/movies/search", Public, a.SearchMovies()},
		{http.MethodGet, "/api/movies/:id", Public, a.GetMovie()},
		{http.MethodPost, "/api/movies", Admin, a.CreateMovie()},
		{http.MethodPut, "/api/movies/:id", Admin, a.UpdateMovie()},
		{http.MethodDelete, "/api/movies/:id", Admin, a.DeleteMovie()},

		{http.MethodGet, "/api/convert-drive-link", Public, a.ConvertDriveLink()},
		{http.MethodGet, "/api/health", Public, a.Health()},
	}
}

// RegisterRoutes mounts the table on r, putting Authenticate and then the
// admin check in front of each handler as its Access requires.
func (a *App) RegisterRoutes(r gin.IRouter) {
	authenticate := middleware.Authenticate(a.Tokens, a.Users, a.Logger, a.Metrics)
	requireAdmin := middleware.RequireAdmin(a.Metrics)

	for _, rt := range a.Routes() {
		var chain []gin.HandlerFunc
		switch rt.Access {
		case Authenticated:
			chain = append(chain, authenticate)
		case Admin:
			chain = append(chain, authenticate, requireAdmin)
		}
		chain = append(chain, rt.Handler)
		r.Handle(rt.Method, rt.Path, chain...)
	}
}
