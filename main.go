package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sportsbet/bookingcode"
	"sportsbet/cache"
	"sportsbet/catalog"
	"sportsbet/controllers/bets"
	"sportsbet/database"
	"sportsbet/engine"
	"sportsbet/realtime"
	"sportsbet/routes"
	"sportsbet/store"
	tasks "sportsbet/task"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	database.Connect()
	cache.Connect()

	codeCache := bookingcode.New(bookingcode.NewRedisStore(cache.Client))
	eng := engine.New(
		store.NewGorm(database.DB),
		catalog.NewReader(database.DB),
		store.NewRules(database.DB),
		store.NewWallets(database.DB),
		codeCache,
		realtime.NewPublisher(cache.Client),
	)
	bets.Init(eng, codeCache)

	host := os.Getenv("HOST")
	port := os.Getenv("PORT")

	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3000"
	}

	app := fiber.New()
	routes.Setup(app)
	tasks.StartCleanupScheduler()

	addr := fmt.Sprintf("%s:%s", host, port)
	log.Println("Server running at", addr)

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Panicf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Gracefully shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited cleanly")
}
