package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port          string
	DBDSN         string
	TokenTTL      time.Duration
	BcryptCost    int
	LogFile       string
	AdminPassword string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "adboard.db" // sqlite file in project root
	}

	ttl := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		} else {
			log.Printf("[warn] ignoring invalid TOKEN_TTL=%q", v)
		}
	}

	cost := bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= bcrypt.MinCost && n <= bcrypt.MaxCost {
			cost = n
		} else {
			log.Printf("[warn] ignoring invalid BCRYPT_COST=%q", v)
		}
	}

	adminPass := os.Getenv("ADMIN_PASSWORD")
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		TokenTTL:      ttl,
		BcryptCost:    cost,
		LogFile:       logFile,
		AdminPassword: adminPass,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s TOKEN_TTL=%s BCRYPT_COST=%d LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.TokenTTL, cfg.BcryptCost, cfg.LogFile)
	return cfg
}
