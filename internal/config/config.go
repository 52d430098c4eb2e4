package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	Port           string
	WhatsAppNumber string
	ImgHostURL     string
	ImgHostKey     string
	CartDir        string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "eggshop"),
		Port:           getEnvOrDefault("PORT", "8080"),
		WhatsAppNumber: getEnvOrDefault("WHATSAPP_NUMBER", "5553999990000"),
		ImgHostURL:     getEnvOrDefault("IMGHOST_URL", "https://api.imgbb.com/1/upload"),
		ImgHostKey:     getEnvOrDefault("IMGHOST_KEY", ""),
		CartDir:        getEnvOrDefault("CART_DIR", "./data/carts"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
