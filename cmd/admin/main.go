package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"lovegogo/backend/internal/config"
	"lovegogo/backend/internal/models"
	"lovegogo/backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	storageSvc := storage.NewStorageService(db, rdb)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "ban":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin ban <user_id> [duration_in_hours]")
			os.Exit(1)
		}
		userID := os.Args[2]
		duration := 24
		if len(os.Args) > 3 {
			var err error
			duration, err = strconv.Atoi(os.Args[3])
			if err != nil {
				fmt.Println("Invalid duration. Please provide an integer.")
				os.Exit(1)
			}
		}
		if err := banUser(storageSvc, userID, duration); err != nil {
			log.Fatalf("Error banning user: %v", err)
		}
		fmt.Printf("User %s has been banned.\n", userID)
	case "unban":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unban <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := unbanUser(storageSvc, userID); err != nil {
			log.Fatalf("Error unbanning user: %v", err)
		}
		fmt.Printf("User %s has been unbanned.\n", userID)
	case "confirm-report":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin confirm-report <report_id>")
			os.Exit(1)
		}
		reportID, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid report ID. Please provide an integer.")
			os.Exit(1)
		}
		if err := confirmReport(storageSvc, uint(reportID)); err != nil {
			log.Fatalf("Error confirming report: %v", err)
		}
		fmt.Printf("Report %d has been confirmed.\n", reportID)
	case "seed":
		if err := db.AutoMigrate(&models.User{}, &models.ChatRoom{}, &models.Message{}, &models.Report{}); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		if err := seedUsers(storageSvc); err != nil {
			log.Fatalf("Error seeding users: %v", err)
		}
		fmt.Println("Demo users seeded.")
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func banUser(s storage.Storage, userID string, durationHours int) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	until := time.Now().Add(time.Duration(durationHours) * time.Hour)
	user.IsBlocked = true
	user.BlockEndTime = until.Unix()
	user.LastBanDate = time.Now().Unix()
	if err := s.UpdateUser(user); err != nil {
		return err
	}
	return s.SetBanned(userID, until)
}

func unbanUser(s storage.Storage, userID string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.IsBlocked = false
	user.BlockEndTime = 0
	if err := s.UpdateUser(user); err != nil {
		return err
	}
	return s.ClearBan(userID)
}

func confirmReport(s storage.Storage, reportID uint) error {
	report, err := s.GetReportByID(reportID)
	if err != nil {
		return err
	}
	return s.UpdateUserReputation(report.ReporterID, config.ConfirmedReportBonus)
}

// Демо-каталог: детерміновані користувачі для локальної розробки,
// стать чергується, всі з паролем "password123".
var seedNames = []string{
	"Olivia", "Liam", "Emma", "Noah", "Sofia",
	"Mark", "Alice", "James", "Mia", "Daniel",
	"Kate", "Andrew", "Nina", "Oleh", "Iryna",
	"Taras", "Lesia", "Roman", "Oksana", "Yurii",
}

var seedInterests = []string{"music", "travel", "coding", "hiking", "movies", "photography", "cooking"}

func seedUsers(s storage.Storage) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for i, name := range seedNames {
		gender := "female"
		if i%2 == 1 {
			gender = "male"
		}

		user := &models.User{
			Email:        fmt.Sprintf("user%d@lovegogo.dev", i+1),
			PasswordHash: string(hash),
			Name:         name,
			Age:          21 + i,
			Gender:       gender,
			Bio:          fmt.Sprintf("Hi, I'm %s!", name),
			Location:     "Kyiv",
			Photos:       []string{fmt.Sprintf("https://i.pravatar.cc/300?u=%d", i+1)},
			Interests:    []string{seedInterests[i%len(seedInterests)], seedInterests[(i+2)%len(seedInterests)]},
			Likes:        []string{},
			Matches:      []string{},
		}

		if err := s.CreateUser(user); err != nil {
			if errors.Is(err, storage.ErrDuplicateEmail) {
				continue // вже засіяно
			}
			return err
		}
	}
	return nil
}
