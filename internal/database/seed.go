package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"APEX_BACK-END/internal/models"
)

// ServiceSeeder inserts a catalog service unless one with the same name
// already exists. Implemented by repository.Repository with an atomic
// upsert, so concurrent seeders cannot create duplicates.
type ServiceSeeder interface {
	InsertServiceIfAbsent(ctx context.Context, svc *models.Service) (bool, error)
}

// defaultServices is the fixed reference catalog
var defaultServices = []models.Service{
	{
		Name:        "Performance Tuning",
		Description: "Engine optimization and performance enhancement",
		Price:       599,
		Category:    "Performance",
		Icon:        "Zap",
	},
	{
		Name:        "Custom Exhaust",
		Description: "High-performance custom exhaust system",
		Price:       899,
		Category:    "Performance",
		Icon:        "Zap",
	},
	{
		Name:        "Turbo Installation",
		Description: "Professional turbocharger installation and tuning",
		Price:       2499,
		Category:    "Performance",
		Icon:        "Zap",
	},
	{
		Name:        "Suspension Upgrade",
		Description: "Complete suspension system upgrade",
		Price:       1299,
		Category:    "Handling",
		Icon:        "Settings",
	},
	{
		Name:        "Body Kit",
		Description: "Custom aerodynamic body kit installation",
		Price:       1799,
		Category:    "Appearance",
		Icon:        "Palette",
	},
	{
		Name:        "Wheel Package",
		Description: "Premium wheel and tire package",
		Price:       1999,
		Category:    "Appearance",
		Icon:        "Circle",
	},
}

// SeedServices inserts the reference catalog. Rows that already exist
// are skipped, so running it on every startup is a no-op after the
// first. Returns the number of services inserted.
func SeedServices(ctx context.Context, seeder ServiceSeeder, logger *slog.Logger) (int, error) {
	inserted := 0
	for i := range defaultServices {
		svc := defaultServices[i]
		svc.ID = uuid.New()
		svc.CreatedAt = time.Now()

		ok, err := seeder.InsertServiceIfAbsent(ctx, &svc)
		if err != nil {
			return inserted, fmt.Errorf("seed service %q: %w", svc.Name, err)
		}
		if ok {
			inserted++
		}
	}

	if inserted > 0 {
		logger.Info("service catalog seeded", "inserted", inserted)
	} else {
		logger.Info("service catalog already seeded")
	}
	return inserted, nil
}
