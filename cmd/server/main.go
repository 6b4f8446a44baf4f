package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"hotel-management/internal/chat"
	"hotel-management/internal/config"
	"hotel-management/internal/database"
	"hotel-management/internal/handler"
	"hotel-management/internal/middleware"
	"hotel-management/internal/queue"
	"hotel-management/internal/repository"
	"hotel-management/internal/router"
	"hotel-management/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	rooms := repository.NewRoomRepo(db)
	guests := repository.NewGuestRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)
	services := repository.NewServiceRepo(db)
	menu := repository.NewMenuRepo(db)
	orders := repository.NewOrderRepo(db)
	chatRepo := repository.NewChatRepo(db)

	// Chat core
	registry := chat.NewRegistry()
	coordinator := chat.NewCoordinator(chatRepo, menu, orders, registry, service.NewQueuePublisher())
	gateway := chat.NewGateway(coordinator, cfg.JWTSecret)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	roomH := handler.NewRoomHandler(rooms)
	guestH := handler.NewGuestHandler(guests)
	bookingH := handler.NewBookingHandler(bookings, rooms, guests)
	paymentH := handler.NewPaymentHandler(payments, bookings)
	serviceH := handler.NewServiceHandler(services, bookings)
	foodH := handler.NewFoodHandler(menu, orders)
	chatReqH := handler.NewChatRequestHandler(chatRepo)

	e := echo.New()
	e.HideBanner = true

	// Redis-backed rate limiting and response caching. A nil client
	// disables both and the server runs without them.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	menuCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, foodH, menuCache)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterGuestFacing(e, roomH, serviceH, cfg.JWTSecret)
	router.RegisterStaff(e, router.StaffHandlers{
		Rooms:        roomH,
		Guests:       guestH,
		Bookings:     bookingH,
		Payments:     paymentH,
		Services:     serviceH,
		Food:         foodH,
		ChatRequests: chatReqH,
	}, cfg.JWTSecret)
	router.RegisterChat(e, gateway)

	// Background consumer draining staff notifications from the broker.
	go func() {
		if err := queue.StartNotificationsConsumer(); err != nil {
			log.Printf("notifications consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
