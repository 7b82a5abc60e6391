package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"lifewithchrist/community/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(db *sqlx.DB, redisClient *redis.Client, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		pgStatus := "ok"
		pgDetails := "Postgres connected"
		if err := db.Ping(); err != nil {
			pgStatus = "down"
			pgDetails = err.Error()
		}
		services["postgres"] = entities.ServiceStatus{
			Status:  pgStatus,
			Details: pgDetails,
		}

		redisStatus := "ok"
		redisDetails := "Redis connected"
		if err := redisClient.Ping(r.Context()).Err(); err != nil {
			redisStatus = "down"
			redisDetails = err.Error()
		}
		services["redis"] = entities.ServiceStatus{
			Status:  redisStatus,
			Details: redisDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
