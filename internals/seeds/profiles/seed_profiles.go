package profiles

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"absenku_backend/internals/constants"
	profileModel "absenku_backend/internals/features/employee/model"
)

type ProfileSeed struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Password   string  `json:"password"`
	EmployeeID *string `json:"employee_id"`
}

func SeedProfilesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file profile:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []ProfileSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing profileModel.ProfileModel
		if err := db.Where("email = ?", data.Email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Profile dengan email '%s' sudah ada, dilewati.", data.Email)
			continue
		}

		role := data.Role
		if !constants.IsValidRole(role) {
			role = constants.RoleEmployee
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", data.Email, err)
			continue
		}

		newProfile := profileModel.ProfileModel{
			ID:           uuid.New(),
			Name:         data.Name,
			Email:        data.Email,
			Role:         profileModel.ProfileRole(role),
			PasswordHash: string(hashed),
			EmployeeID:   data.EmployeeID,
		}

		if err := db.Create(&newProfile).Error; err != nil {
			log.Printf("❌ Gagal insert profile '%s': %v", data.Email, err)
		} else {
			log.Printf("✅ Berhasil insert profile '%s'", data.Email)
		}
	}
}
