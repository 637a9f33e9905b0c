package services

import (
	"fmt"

	"github.com/localnerve/agsdb/internal/config"
	"github.com/localnerve/agsdb/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Identity     string            `json:"identity"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every dependency answered
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck pings the database and the Auth0 tenant
func HealthCheck(cfg *config.Config, db *gorm.DB, log *zap.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	fail := func(format string, err error) {
		result.Status = "unhealthy"
		msg := fmt.Sprintf(format, err)
		if result.ErrorMessage == "" {
			result.ErrorMessage = msg
		} else {
			result.ErrorMessage += "; " + msg
		}
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		fail("Database connection error: %v", err)
		log.Warn("Health check failed - database connection", zap.Error(err))
	} else if err := sqlDB.Ping(); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		fail("Database ping failed: %v", err)
		log.Warn("Health check failed - database ping", zap.Error(err))
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	// Check identity provider connectivity
	if err := utils.PingAuth0(cfg.Auth0.Domain); err != nil {
		result.Identity = "unreachable"
		result.Details["identity_error"] = err.Error()
		fail("Auth0 ping failed: %v", err)
		log.Warn("Health check failed - auth0 ping", zap.Error(err))
	} else {
		result.Identity = "ok"
		result.Details["identity_domain"] = cfg.Auth0.Domain
	}

	if result.Healthy() {
		log.Debug("Health check passed - all systems operational")
	}

	return result
}
