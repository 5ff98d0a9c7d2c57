package db

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wellmap/model"
)

var DB *gorm.DB

// InitDB connects to Postgres, migrates the schema and, on an empty wells
// table, imports the JSON seed file if one is configured.
func InitDB() {
	// .env is a dev convenience; in containers the variables are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}

	host := GetEnvOrDefault("DB_HOST", "localhost")
	port := GetEnvOrDefault("DB_PORT", "5432")
	user := GetEnvOrDefault("DB_USER", "wellmap")
	password := GetEnvOrDefault("DB_PASSWORD", "wellmap")
	dbname := GetEnvOrDefault("DB_NAME", "oil_wells")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=America/Chicago",
		host, user, password, dbname, port,
	)

	// The database may still be starting when we are (docker compose), so
	// retry for a while before giving up.
	var err error
	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("waiting for database... (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("cannot connect to database: %v", err)
	}

	if err := DB.AutoMigrate(&model.Well{}, &model.Stimulation{}, &model.User{}); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	var wellCount int64
	DB.Model(&model.Well{}).Count(&wellCount)
	if wellCount == 0 {
		seed := GetEnvOrDefault("WELLS_SEED_FILE", "wells_seed.json")
		if _, err := os.Stat(seed); err == nil {
			log.Printf("wells table is empty, importing %s...", seed)
			if err := importSeed(seed); err != nil {
				log.Printf("warning: seed import failed: %v", err)
			} else {
				log.Println("seed import finished")
			}
		}
	}

	log.Println("database ready")
}

// GetEnvOrDefault reads an environment variable with a fallback.
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// importSeed loads wells and stimulation rows from a JSON snapshot.
func importSeed(filepath string) error {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var data struct {
		Wells       []model.Well        `json:"wells"`
		Stimulation []model.Stimulation `json:"stimulation"`
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for i := range data.Wells {
		data.Wells[i].APINumber = model.CanonicalAPI(data.Wells[i].APINumber)
	}

	if len(data.Wells) > 0 {
		if err := DB.CreateInBatches(data.Wells, 100).Error; err != nil {
			return fmt.Errorf("insert wells: %w", err)
		}
		log.Printf("imported %d wells", len(data.Wells))
	}

	if len(data.Stimulation) > 0 {
		for i := range data.Stimulation {
			data.Stimulation[i].APINumber = model.CanonicalAPI(data.Stimulation[i].APINumber)
		}
		if err := DB.CreateInBatches(data.Stimulation, 100).Error; err != nil {
			return fmt.Errorf("insert stimulation rows: %w", err)
		}
		log.Printf("imported %d stimulation rows", len(data.Stimulation))
	}

	return nil
}
