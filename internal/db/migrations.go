package db

import (
	"fmt"

	"gorm.io/gorm"
)

// The vehicle, maintenance and fuel tables are owned by the record services;
// this service only adds the indexes its read paths lean on, and only when
// the tables are already present.
var migrationStatements = []string{
	`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'maintenance_records') THEN
			CREATE INDEX IF NOT EXISTS idx_maintenance_vehicle_date
				ON maintenance_records (vehicle_id, service_date);
			CREATE INDEX IF NOT EXISTS idx_maintenance_vehicle_cost
				ON maintenance_records (vehicle_id, cost);
			CREATE INDEX IF NOT EXISTS idx_maintenance_category
				ON maintenance_records (category);
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'fuel_records') THEN
			CREATE INDEX IF NOT EXISTS idx_fuel_vehicle_date
				ON fuel_records (vehicle_id, date);
			CREATE INDEX IF NOT EXISTS idx_fuel_vehicle_full_tank
				ON fuel_records (vehicle_id, is_full_tank, date);
			CREATE INDEX IF NOT EXISTS idx_fuel_type
				ON fuel_records (fuel_type);
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'vehicles') THEN
			CREATE INDEX IF NOT EXISTS idx_vehicles_user
				ON vehicles (user_id);
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
