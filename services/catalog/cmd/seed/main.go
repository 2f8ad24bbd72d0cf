package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"rewear/pkg/cache"
	"rewear/pkg/config"
	"rewear/pkg/database"
	"rewear/pkg/logger"
	"rewear/pkg/models"
	"rewear/pkg/s3"
	"rewear/services/catalog/internal/usecase"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedItem struct {
	title         string
	description   string
	category      string
	itemType      string
	size          string
	condition     string
	brand         string
	originalPrice int64
	ageMonths     int
	tags          []string
}

var seedItems = []seedItem{
	{"Wool Winter Coat", "Heavy wool coat, barely worn", "jacket", "outerwear", "M", "like new", "Zara", 1800, 6, []string{"winter", "wool"}},
	{"Classic Denim Jacket", "Faded but solid", "jacket", "outerwear", "L", "good", "Levi", 1200, 24, []string{"denim", "casual"}},
	{"Summer Floral Dress", "Light dress for warm days", "dress", "clothing", "S", "good", "H&M", 600, 12, []string{"summer", "floral"}},
	{"Running Shoes", "Used for one season", "shoes", "footwear", "42", "fair", "Nike", 1500, 10, []string{"sport", "running"}},
	{"Cashmere Sweater", "Soft and warm", "sweater", "clothing", "M", "like new", "Uniqlo", 900, 3, []string{"winter", "cashmere"}},
	{"Leather Handbag", "Small scratch on the strap", "bag", "accessory", "", "good", "Coach", 3500, 36, []string{"leather", "bag"}},
	{"Slim Fit Jeans", "Never worn, tags on", "jeans", "clothing", "32", "new with tags", "Levi", 1000, 0, []string{"denim"}},
	{"Silk Scarf", "Vintage pattern", "scarf", "accessory", "", "good", "Gucci", 2500, 48, []string{"silk", "vintage"}},
}

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, s3Client, redisClient, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	adminID, err := seedUser(db, log, "admin@rewear.dev", "rewear_admin", "admin-password", models.RoleAdmin)
	if err != nil {
		return err
	}
	log.Info("Admin user ready: %s", adminID)

	testUsers := []struct {
		email    string
		username string
		password string
	}{
		{"alice@test.com", "alice_swaps", "password123"},
		{"bob@test.com", "bob_swaps", "password123"},
		{"charlie@test.com", "charlie_swaps", "password123"},
		{"diana@test.com", "diana_swaps", "password123"},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		userID, err := seedUser(db, log, userData.email, userData.username, userData.password, models.RoleCustomer)
		if err != nil {
			log.Error("Failed to create user %s: %v", userData.username, err)
			continue
		}
		userIDs = append(userIDs, userID)

		// Starting balance is granted through the ledger, not written
		// directly, so seeded accounts reconcile like real ones.
		if err := grantStartingPoints(db, userID, 500); err != nil {
			log.Error("Failed to grant starting points to %s: %v", userData.username, err)
		}
	}

	for i, userID := range userIDs {
		itemsCount := 2
		for j := 0; j < itemsCount; j++ {
			idx := (i*itemsCount + j) % len(seedItems)
			if err := createListingWithPhoto(db, s3Client, redisClient, httpClient, userID, seedItems[idx], idx, log); err != nil {
				log.Error("Failed to create listing %d for user %s: %v", j+1, userID, err)
				continue
			}
			time.Sleep(200 * time.Millisecond)
		}
	}

	return nil
}

func seedUser(db *gorm.DB, log *logger.Logger, email, username, password string, role models.UserRole) (string, error) {
	var existingUser models.User
	result := db.Where("email = ? OR username = ?", email, username).First(&existingUser)
	if result.Error == nil {
		log.Info("User %s already exists, skipping", username)
		return existingUser.ID, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
		Role:     role,
		Status:   models.UserStatusActive,
	}

	if err := user.BeforeCreate(nil); err != nil {
		return "", fmt.Errorf("failed to generate user ID: %w", err)
	}

	if err := db.Create(user).Error; err != nil {
		return "", err
	}

	log.Info("Created user: %s (%s)", user.Username, user.Email)
	return user.ID, nil
}

func grantStartingPoints(db *gorm.DB, userID string, points int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points_balance", gorm.Expr("points_balance + ?", points))
		if res.Error != nil {
			return res.Error
		}

		txn := &models.Transaction{
			UserID:      userID,
			Type:        models.TransactionTypeEarn,
			Points:      points,
			Description: "Starting balance",
		}
		if err := txn.BeforeCreate(nil); err != nil {
			return err
		}
		return tx.Create(txn).Error
	})
}

func createListingWithPhoto(db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client, httpClient *http.Client, userID string, seed seedItem, index int, log *logger.Logger) error {
	photoURL := fmt.Sprintf("https://picsum.photos/seed/rewear-%d/600/800", index)

	log.Info("Fetching placeholder photo from %s", photoURL)
	resp, err := httpClient.Get(photoURL)
	if err != nil {
		return fmt.Errorf("failed to fetch photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("photo API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}

	if len(imageData) == 0 {
		return fmt.Errorf("received empty image data")
	}

	fileKey := fmt.Sprintf("items/%s/seed_%d.jpg", userID, index)
	reader := bytes.NewReader(imageData)
	log.Info("Uploading photo to S3: %s", fileKey)
	imageURL, err := s3Client.UploadFile(fileKey, reader, "image/jpeg")
	if err != nil {
		return fmt.Errorf("failed to upload photo to S3: %w", err)
	}

	item := &models.Item{
		Title:         seed.title,
		Description:   seed.description,
		Category:      seed.category,
		Type:          seed.itemType,
		Size:          seed.size,
		Condition:     seed.condition,
		Tags:          pq.StringArray(seed.tags),
		Images:        pq.StringArray{imageURL},
		Brand:         seed.brand,
		OriginalPrice: seed.originalPrice,
		AgeMonths:     seed.ageMonths,
		PointsValue:   usecase.EstimatePoints(seed.brand, seed.condition, seed.ageMonths, seed.category, seed.originalPrice),
		UploadedBy:    userID,
		Availability:  models.ItemAvailable,
		Moderation:    models.ModerationApproved,
	}

	if err := item.BeforeCreate(nil); err != nil {
		return fmt.Errorf("failed to generate item ID: %w", err)
	}

	if err := db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	log.Info("Created listing: %s (%d points)", item.Title, item.PointsValue)

	ctx := context.Background()
	itemJSON, err := json.Marshal(item)
	if err == nil {
		itemKey := fmt.Sprintf("item:%s", item.ID)
		redisClient.Set(ctx, itemKey, itemJSON, 24*time.Hour)
		log.Info("Cached listing %s in Redis", item.ID)
	}

	return nil
}
