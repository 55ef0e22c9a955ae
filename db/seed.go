package db

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal/model"
)

type seedCountry struct {
	Name   string   `json:"name"`
	Code3  string   `json:"code3"`
	Cities []string `json:"cities"`
}

// SeedGeo loads countries and cities from a JSON file into the geo
// tables. Already-seeded databases are left alone.
func SeedGeo(db *gorm.DB, path string) error {
	var count int64
	if err := db.Model(model.Country{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		zap.L().Debug("Geo tables already seeded, skipping")
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read geo seed file, %w", err)
	}

	var countries []seedCountry
	if err := json.Unmarshal(raw, &countries); err != nil {
		return fmt.Errorf("failed to parse geo seed file, %w", err)
	}

	for _, sc := range countries {
		country := model.Country{
			Name:  sc.Name,
			Code3: sc.Code3,
		}

		for _, name := range sc.Cities {
			country.Cities = append(country.Cities, model.City{Name: name})
		}

		if err := db.Create(&country).Error; err != nil {
			return fmt.Errorf("failed to seed country %s, %w", sc.Name, err)
		}
	}

	zap.L().Info("Seeded geo tables", zap.Int("countries", len(countries)))
	return nil
}
