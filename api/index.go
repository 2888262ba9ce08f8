package handler

import (
	"net/http"

	"haunters/config"
	"haunters/di"
	"haunters/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()
	app.HTTP.ServeHTTP(w, r)
}
