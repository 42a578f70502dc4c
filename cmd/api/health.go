package main

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// healthCheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Healthcheck endpoint
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	// check db, the in-memory store has nothing to ping
	dbStatus := "ok"
	if app.storage != nil {
		if err := app.storage.Ping(r.Context()); err != nil {
			dbStatus = "error"
		}
	}

	response := HealthResponse{
		Status:    "healthy",
		Version:   version,
		Timestamp: time.Now(),
		Services: map[string]string{
			"database": dbStatus,
			"queue":    "ok",
		},
	}

	if dbStatus != "ok" {
		response.Status = "unhealthy"
		if err := writeJson(w, http.StatusServiceUnavailable, response); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJson(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
