package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	cartControllers "github.com/dhruvmohan867/Ecommerce-Website/controllers/cart"
	"github.com/dhruvmohan867/Ecommerce-Website/models"
	"github.com/dhruvmohan867/Ecommerce-Website/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Size{},
		&models.Product{},
		&models.CartItem{},
		&models.Favorite{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db)

	startCartPruner(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func initDatabase() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("❌ DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	return db
}

// startCartPruner sweeps abandoned cart entries every night so user
// carts do not accumulate stale rows forever.
func startCartPruner(db *gorm.DB) {
	days := 90
	if v, err := strconv.Atoi(os.Getenv("CART_TTL_DAYS")); err == nil && v > 0 {
		days = v
	}

	c := cron.New()
	if err := c.AddFunc("@midnight", func() {
		removed, err := cartControllers.PruneStaleItems(db, time.Duration(days)*24*time.Hour)
		if err != nil {
			log.Printf("❌ Cart prune failed: %v", err)
			return
		}
		log.Printf("🧹 Cart prune removed %d stale entries", removed)
	}); err != nil {
		log.Fatalf("❌ Failed to schedule cart pruner: %v", err)
	}
	c.Start()
}
