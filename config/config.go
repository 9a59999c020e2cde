package config

import (
	"os"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/farellandr/dataswift/internal/models"
	"github.com/farellandr/dataswift/internal/store"
)

type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	PaymentDelay time.Duration
	RootAdmin    models.User
}

func LoadConfig() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "dataswift.db"
	}

	delayMs := 1000
	if raw := os.Getenv("PAYMENT_DELAY_MS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed >= 0 {
			delayMs = parsed
		}
	}

	return &Config{
		Port:         port,
		DBPath:       dbPath,
		JWTSecret:    os.Getenv("JWT_SECRET"),
		PaymentDelay: time.Duration(delayMs) * time.Millisecond,
		RootAdmin:    loadRootAdmin(),
	}, nil
}

// loadRootAdmin assembles the reserved administrator record. Its contact
// email is configuration, not a hardcoded literal, and the record is
// injected into the user collection on load if missing.
func loadRootAdmin() models.User {
	email := os.Getenv("ROOT_ADMIN_EMAIL")
	if email == "" {
		email = "admin@dataswift.com"
	}
	name := os.Getenv("ROOT_ADMIN_NAME")
	if name == "" {
		name = "dev team"
	}
	password := os.Getenv("ROOT_ADMIN_PASSWORD")
	if password == "" {
		password = "lumen99devaccess"
	}

	return models.User{
		ID:         "USR-ROOT",
		Name:       name,
		Email:      email,
		Password:   password,
		Avatar:     "https://i.pravatar.cc/150?u=devteam",
		Role:       models.RoleAdmin,
		JoinedDate: "01-Jan-2023",
	}
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&store.Blob{}); err != nil {
		return nil, err
	}

	return db, nil
}
