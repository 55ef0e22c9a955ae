package service

import (
	"testing"

	"gorm.io/gorm"

	"synco/social-api/internal/model"
)

func seedGeo(t *testing.T, conn *gorm.DB) (poland model.Country, warsaw, berlin model.City) {
	t.Helper()

	poland = model.Country{Name: "Poland", Code3: "POL"}
	if err := conn.Create(&poland).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}

	germany := model.Country{Name: "Germany", Code3: "DEU"}
	if err := conn.Create(&germany).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}

	warsaw = model.City{CountryID: poland.ID, Name: "Warsaw"}
	if err := conn.Create(&warsaw).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}

	berlin = model.City{CountryID: germany.ID, Name: "Berlin"}
	if err := conn.Create(&berlin).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}

	return poland, warsaw, berlin
}

func TestCityMustBelongToCountry(t *testing.T) {
	conn := newTestDB(t)
	poland, warsaw, berlin := seedGeo(t, conn)

	_, _, err := ValidateCountryAndCity(conn, &poland.ID, &warsaw.ID)
	if err != nil {
		t.Fatalf("matching pair: %v", err)
	}

	_, _, err = ValidateCountryAndCity(conn, &poland.ID, &berlin.ID)
	if err != ErrCityCountryMismatch {
		t.Fatalf("expected ErrCityCountryMismatch, got %v", err)
	}
}

func TestCityFillsInCountry(t *testing.T) {
	conn := newTestDB(t)
	poland, warsaw, _ := seedGeo(t, conn)

	country, city, err := ValidateCountryAndCity(conn, nil, &warsaw.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if country == nil || *country != poland.ID {
		t.Fatalf("expected country to be filled in from the city, got %v", country)
	}
	if city == nil || *city != warsaw.ID {
		t.Fatalf("expected city to pass through, got %v", city)
	}
}

func TestUnknownCityAndCountry(t *testing.T) {
	conn := newTestDB(t)
	seedGeo(t, conn)

	missing := uint(9999)

	if _, _, err := ValidateCountryAndCity(conn, nil, &missing); err != ErrCityNotFound {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}

	if _, _, err := ValidateCountryAndCity(conn, &missing, nil); err != ErrCountryNotFound {
		t.Fatalf("expected ErrCountryNotFound, got %v", err)
	}
}
