package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/monster-widget/pkg/config"
)

// TursoDSN appends the auth token to a libSQL database URL.
func TursoDSN(databaseURL, authToken string) string {
	if authToken == "" {
		return databaseURL
	}
	sep := "?"
	if strings.Contains(databaseURL, "?") {
		sep = "&"
	}
	return databaseURL + sep + "authToken=" + url.QueryEscape(authToken)
}

// PingTurso opens a throwaway libSQL connection and runs SELECT 1.
func PingTurso(databaseURL, authToken string, logger *logging.ChanneledLogger) error {
	start := time.Now()
	logger.Database().Debug("Testing Turso database connection", "databaseURL", databaseURL)

	db, err := sql.Open(DriverLibSQL, TursoDSN(databaseURL, authToken))
	if err != nil {
		logger.Database().Error("Failed to open Turso connection", "error", err.Error(), "databaseURL", databaseURL)
		return fmt.Errorf("failed to open connection: %w", err)
	}
	defer db.Close()

	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		logger.Database().Error("Turso connection test query failed", "error", err.Error(), "databaseURL", databaseURL)
		return fmt.Errorf("connection test query failed: %w", err)
	}
	if result != 1 {
		return fmt.Errorf("unexpected query result: %d", result)
	}

	logger.Database().Info("Turso connection test successful", "databaseURL", databaseURL, "duration", time.Since(start))
	return nil
}

// CheckAndLogSlowQuery logs query on the slow-query channel when duration
// exceeds the configured threshold.
func CheckAndLogSlowQuery(logger *logging.ChanneledLogger, query string, duration time.Duration) {
	if duration > config.SlowQueryThreshold {
		logger.LogSlowQuery(query, duration)
	}
}
