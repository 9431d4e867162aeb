package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"lovegogo/backend/internal/api/handler"
	"lovegogo/backend/internal/chat"
	"lovegogo/backend/internal/chathub"
	"lovegogo/backend/internal/localization"
	"lovegogo/backend/internal/matching"
	"lovegogo/backend/internal/models"
	"lovegogo/backend/internal/moderation"
	"lovegogo/backend/internal/notify"
	"lovegogo/backend/internal/storage"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "lovegogodb"),
		envOr("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (Створення таблиць)
	err = db.AutoMigrate(
		&models.User{},
		&models.ChatRoom{},
		&models.Message{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting LoveGoGo Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	// 2. Сервіси рушія
	hub := chathub.NewManagerService(s)
	feed := matching.NewFeedService(s)
	resolver := matching.NewResolverService(s)
	conv := chat.NewConversationService(s)
	mod := moderation.NewService(s)

	// WebSocket-повідомлення проходять той самий шлях, що й REST.
	hub.SetMessageSink(conv.SendMessage)

	// 3. Сповіщення про метчі (Telegram опціональний)
	loc := localization.NewLocalizer()
	if dir := os.Getenv("LOCALES_DIR"); dir != "" {
		if err := loc.LoadDir(dir); err != nil {
			log.Printf("Warning: failed to load locales from %s: %v", dir, err)
		}
	}

	var bot *tgbotapi.BotAPI
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		var err error
		bot, err = tgbotapi.NewBotAPI(token)
		if err != nil {
			log.Printf("Warning: Telegram bot disabled: %v", err)
			bot = nil
		}
	}
	resolver.Notifier = notify.NewService(s, bot, loc, envOr("NOTIFY_LANG", "en"))

	// 4. Запуск основних Goroutines
	hub.StartPubSubListener() // Слухач Redis Pub/Sub
	go hub.Run()              // Головний диспетчер realtime-з'єднань

	// 5. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(hub, s, feed, resolver, conv, mod)

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/ws", h.ServeWebSocket) // WebSocket Upgrade (токен у query)

	authorized := r.Group("/", h.RequireAuth())
	{
		authorized.GET("/me", h.GetMe)
		authorized.PUT("/me", h.UpdateMe)
		authorized.GET("/users/:id", h.GetProfile)

		authorized.GET("/candidates", h.GetCandidates)
		authorized.POST("/likes", h.Like)
		authorized.POST("/passes", h.Pass)

		authorized.GET("/rooms", h.ListRooms)
		authorized.GET("/rooms/:id/messages", h.ListMessages)
		authorized.POST("/rooms/:id/messages", h.SendMessage)
		authorized.GET("/rooms/:id/messages/more", h.LoadMoreMessages)

		authorized.POST("/reports", h.Report)
	}

	// Запуск HTTP-сервера
	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
