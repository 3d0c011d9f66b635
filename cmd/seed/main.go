package main

import (
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/database"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/seed"
)

// seed наполняет базу демо-данными. Повторный запуск безопасен.
func main() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	logger.Info("Creating demo data...")
	report, err := seed.NewSeeder().Run(db)
	if err != nil {
		logger.Fatal("Failed to create demo data", "error", err)
	}

	logger.Info("Demo data created successfully", "created", report.Created, "skipped", report.Skipped)
	logger.Info("Login credentials",
		"admin", seed.AdminUsername+" / "+seed.AdminPassword,
		"company", "securecorp / "+seed.CompanyPassword,
		"jobseeker", "john_doe / "+seed.SeekerPassword,
	)
}
