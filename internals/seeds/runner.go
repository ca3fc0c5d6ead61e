package seeds

import (
	profiles "absenku_backend/internals/seeds/profiles"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	profiles.SeedProfilesFromJSON(db, "internals/seeds/profiles/data_profiles.json")
}
