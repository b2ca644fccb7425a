package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/easygen/auth-service/docs"
)

func (a *API) setupRoutes() {
	a.mux.HandleFunc("POST /auth/signup", a.routes.auth.SignUp)
	a.mux.HandleFunc("POST /auth/signin", a.routes.auth.SignIn)
	a.mux.HandleFunc("POST /auth/logout", a.routes.auth.Logout)
	a.mux.Handle("GET /auth/me", a.m.RequireAuthenticated(a.routes.auth.Profile))

	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)
	a.mux.Handle("GET /metrics", promhttp.Handler())

	a.mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.InstanceName("auth"),
	))
}
