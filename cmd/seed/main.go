package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/surajkarki66/MediLeaf-backend/config"
	"github.com/surajkarki66/MediLeaf-backend/pkg/helpers"
)

// Seeds a verified admin account and a small starter taxonomy so a fresh
// install has something to look at.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@medileaf.com"
	password := "medileaf-admin"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID int64
	err = db.QueryRow(`
		INSERT INTO users (first_name, last_name, email, password, is_verified, is_staff)
		VALUES ('MediLeaf', 'Admin', $1, $2, TRUE, TRUE)
		ON CONFLICT (lower(email)) DO UPDATE SET is_staff = TRUE
		RETURNING id
	`, email, hash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO profiles (user_id, slug) VALUES ($1, 'medileaf-admin')
		ON CONFLICT (user_id) DO NOTHING
	`, adminID); err != nil {
		log.Fatalf("failed to seed admin profile: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO user_groups (user_id, group_id)
		SELECT $1, id FROM groups WHERE name = 'admin'
		ON CONFLICT (user_id, group_id) DO NOTHING
	`, adminID); err != nil {
		log.Fatalf("failed to assign admin group: %v", err)
	}
	fmt.Printf("seeded admin: id=%d email=%s password=%s\n", adminID, email, password)

	var familyID int64
	if err := db.QueryRow(`
		INSERT INTO plant_families (title, slug) VALUES ('Lamiaceae', 'lamiaceae')
		ON CONFLICT (slug) DO UPDATE SET updated_at = now()
		RETURNING id
	`).Scan(&familyID); err != nil {
		log.Fatalf("failed to seed family: %v", err)
	}

	var genusID int64
	if err := db.QueryRow(`
		INSERT INTO plant_genuses (title, slug, family_id) VALUES ('Ocimum', 'ocimum', $1)
		ON CONFLICT (slug) DO UPDATE SET updated_at = now()
		RETURNING id
	`, familyID).Scan(&genusID); err != nil {
		log.Fatalf("failed to seed genus: %v", err)
	}

	var speciesID int64
	if err := db.QueryRow(`
		INSERT INTO plant_species (title, slug, genus_id) VALUES ('tenuiflorum', 'ocimum-tenuiflorum', $1)
		ON CONFLICT (slug) DO UPDATE SET updated_at = now()
		RETURNING id
	`, genusID).Scan(&speciesID); err != nil {
		log.Fatalf("failed to seed species: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO plants (common_names, description, medicinal_properties, duration, growth_habit,
			wikipedia_link, family_id, genus_id, species_id)
		SELECT ARRAY['Holy basil', 'Tulsi'],
			'Aromatic perennial plant native to the Indian subcontinent.',
			'Used in traditional medicine for respiratory and digestive ailments.',
			'perennial', 'herb',
			'https://en.wikipedia.org/wiki/Ocimum_tenuiflorum',
			$1, $2, $3
		WHERE NOT EXISTS (SELECT 1 FROM plants WHERE genus_id = $2 AND species_id = $3)
	`, familyID, genusID, speciesID); err != nil {
		log.Fatalf("failed to seed plant: %v", err)
	}
	fmt.Println("seeded starter taxonomy: Lamiaceae / Ocimum / tenuiflorum")
}
