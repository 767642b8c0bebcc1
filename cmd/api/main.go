package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spiceshelf/spiceshelf-golang/internal/ai"
	"github.com/spiceshelf/spiceshelf-golang/internal/catalog"
	"github.com/spiceshelf/spiceshelf-golang/internal/database"
	"github.com/spiceshelf/spiceshelf-golang/internal/email"
	"github.com/spiceshelf/spiceshelf-golang/internal/handlers"
	"github.com/spiceshelf/spiceshelf-golang/internal/routes"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// --- AI Service (optional) ---
	// The recipe assistant endpoint returns 503 when no key is configured.
	var aiService *ai.Service
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		aiService, err = ai.NewService(geminiKey)
		if err != nil {
			log.Fatalf("Failed to initialize AI service: %v", err)
		}
	} else {
		log.Println("WARNING: GEMINI_API_KEY not set; AI assistant disabled.")
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:         db,
		Categories: &catalog.SQLCategoryStore{DB: db},
		Mailer:     email.NewMailerFromEnv(),
		AIService:  aiService,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Starting Spiceshelf API server on %s...", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
