package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	MongoURI    string
	MongoDB     string
	FrontendURL string

	// AuthProvider selects the bearer token verifier: firebase, google or jwt
	AuthProvider               string
	FirebaseServiceAccountPath string
	GoogleClientID             string
	JWTSecret                  string
	JWTExpireHours             int

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	SubmitRateLimit  int
	FeedRateLimit    int
	UploadStagingDir string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "foundit"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		AuthProvider:               getEnv("AUTH_PROVIDER", "firebase"),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", "firebase-service-account.json"),
		GoogleClientID:             getEnv("GOOGLE_CLIENT_ID", ""),
		JWTSecret:                  getEnv("JWT_SECRET", "secret"),
		JWTExpireHours:             getEnvInt("JWT_EXPIRE_HOURS", 24),

		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:       getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "lost-found-images"),

		SubmitRateLimit:  getEnvInt("SUBMIT_RATE_LIMIT", 10),
		FeedRateLimit:    getEnvInt("FEED_RATE_LIMIT", 120),
		UploadStagingDir: getEnv("UPLOAD_STAGING_DIR", os.TempDir()),
	}
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
