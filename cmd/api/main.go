package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/usamaejaz9741/pizza-shop/internal/auth"
	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
	"github.com/usamaejaz9741/pizza-shop/internal/db"
	"github.com/usamaejaz9741/pizza-shop/internal/order"
	"github.com/usamaejaz9741/pizza-shop/internal/router"
	"github.com/usamaejaz9741/pizza-shop/internal/storage"
	"github.com/usamaejaz9741/pizza-shop/internal/whatsapp"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"ADMIN_PASSWORD",
		"SESSION_SECRET",
		"OWNER_WHATSAPP_NUMBER",
		"WHAPI_TOKEN",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	rdb := db.ConnectRedis()
	defer rdb.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}
	if r2Client == nil {
		log.Println("R2 not configured, product image upload disabled")
	}

	// ───────────────────────── AUTH ─────────────────────────
	authService, err := auth.NewService(os.Getenv("ADMIN_PASSWORD"))
	if err != nil {
		log.Fatal("❌ Auth init failed:", err)
	}
	authHandler := auth.NewHandler(authService)

	// ───────────────────────── CATALOG ─────────────────────────
	catalogRepo := catalog.NewPostgresRepository(pgDB)
	catalogService := catalog.NewService(catalogRepo)

	var images catalog.ImageStorage
	if r2Client != nil {
		images = r2Client
	}
	catalogHandler := catalog.NewHandler(catalogService, images)

	// ───────────────────────── ORDERS ─────────────────────────
	sender := whatsapp.NewClient(os.Getenv("WHAPI_BASE_URL"), os.Getenv("WHAPI_TOKEN"))
	cartStore := order.NewRedisCartStore(rdb)

	orderService := order.NewService(
		catalogService,
		cartStore,
		sender,
		os.Getenv("OWNER_WHATSAPP_NUMBER"),
	)
	orderHandler := order.NewHandler(orderService)

	// ───────────────────────── SERVER ─────────────────────────
	r := router.NewRouter(authHandler, catalogHandler, orderHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
