package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Borcheg1/go-restaurant-api/internal/cache"
	"github.com/Borcheg1/go-restaurant-api/internal/db"
	"github.com/Borcheg1/go-restaurant-api/internal/dish"
	"github.com/Borcheg1/go-restaurant-api/internal/fullmenu"
	"github.com/Borcheg1/go-restaurant-api/internal/menu"
	"github.com/Borcheg1/go-restaurant-api/internal/storage"
	"github.com/Borcheg1/go-restaurant-api/internal/submenu"
	"github.com/Borcheg1/go-restaurant-api/internal/sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"REDIS_ADDR",
		"MENU_XLSX_PATH",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB + CACHE ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	store := cache.Connect()
	defer store.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── REPOS ─────────────────────────
	menuRepo := menu.NewPostgresRepository(pgDB)
	submenuRepo := submenu.NewPostgresRepository(pgDB)
	dishRepo := dish.NewPostgresRepository(pgDB)
	fullMenuRepo := fullmenu.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	menuService := menu.NewService(menuRepo, store)
	submenuService := submenu.NewService(submenuRepo, store)
	dishService := dish.NewService(dishRepo, store)
	fullMenuService := fullmenu.NewService(fullMenuRepo, store)

	// ───────────────────────── HANDLERS ─────────────────────────
	menuHandler := menu.NewHandler(menuService)
	submenuHandler := submenu.NewHandler(submenuService)
	dishHandler := dish.NewHandler(dishService)
	fullMenuHandler := fullmenu.NewHandler(fullMenuService)

	// ───────────────────────── MENU ROUTES ─────────────────────────
	api := r.Group("/api/v1")

	menus := api.Group("/menus")
	{
		menus.GET("", menuHandler.GetAll)
		menus.POST("", menuHandler.Add)
		menus.GET("/:menu_id", menuHandler.GetByID)
		menus.PATCH("/:menu_id", menuHandler.Update)
		menus.DELETE("/:menu_id", menuHandler.Delete)
	}

	// ───────────────────────── SUBMENU ROUTES ─────────────────────────
	submenus := menus.Group("/:menu_id/submenus")
	{
		submenus.GET("", submenuHandler.GetAll)
		submenus.POST("", submenuHandler.Add)
		submenus.GET("/:submenu_id", submenuHandler.GetByID)
		submenus.PATCH("/:submenu_id", submenuHandler.Update)
		submenus.DELETE("/:submenu_id", submenuHandler.Delete)
	}

	// ───────────────────────── DISH ROUTES ─────────────────────────
	dishes := submenus.Group("/:submenu_id/dishes")
	{
		dishes.GET("", dishHandler.GetAll)
		dishes.POST("", dishHandler.Add)
		dishes.GET("/:dish_id", dishHandler.GetByID)
		dishes.PATCH("/:dish_id", dishHandler.Update)
		dishes.DELETE("/:dish_id", dishHandler.Delete)
	}

	// ───────────────────────── FULL MENU ─────────────────────────
	api.GET("/full_menu", fullMenuHandler.Get)

	// ───────────────────────── SYNC WORKER ─────────────────────────
	syncRepo := sync.NewPostgresRepository(pgDB)
	engine := sync.NewEngine(syncRepo, store, os.Getenv("MENU_XLSX_PATH"))
	worker := sync.NewWorker(engine, syncInterval())

	if os.Getenv("R2_ENDPOINT") != "" {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		worker = worker.WithFetcher(r2Client, os.Getenv("R2_OBJECT_KEY"))
	}

	go worker.Run()

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Println("🚀 API running at http://localhost:" + port)
	r.Run(":" + port)
}

func syncInterval() time.Duration {
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("⚠️  Invalid SYNC_INTERVAL %q, using default", v)
	}
	return 15 * time.Second
}
