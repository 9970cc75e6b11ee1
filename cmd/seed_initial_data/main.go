package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"lingodeck/cmd/seed_initial_data/internal/seedmodels"
	opsdb "lingodeck/database"
	"lingodeck/internal/config"
	"lingodeck/internal/domain"
	"lingodeck/internal/logger"
	"lingodeck/internal/repository"
	"lingodeck/internal/util"

	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/initial_lessons.json"

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	// Seeding runs next to a full Oracle client, so it uses the godror
	// connection helper rather than the pure-Go driver.
	db, err := opsdb.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var seed seedmodels.SeedData
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data",
		zap.Int("users", len(seed.Users)),
		zap.Int("lessons", len(seed.Lessons)))

	userRepo := repository.NewSQLXUserRepository(db)
	lessonRepo := repository.NewLessonDatabaseAdapter(db)

	// google_id -> user id, for lesson ownership and assignments.
	userIDs := make(map[string]string)

	for _, su := range seed.Users {
		existing, err := userRepo.GetUserByGoogleID(ctx, su.GoogleID)
		if err != nil {
			log.Fatal("Error checking user", zap.String("google_id", su.GoogleID), zap.Error(err))
		}
		if existing != nil {
			log.Info("User exists.", zap.String("id", existing.ID), zap.String("email", existing.Email))
			userIDs[su.GoogleID] = existing.ID
			continue
		}

		user := &domain.User{
			ID:                util.NewULID(),
			GoogleID:          su.GoogleID,
			Email:             su.Email,
			Name:              su.Name,
			ProfilePictureURL: su.ProfilePictureURL,
			IsAdmin:           su.IsAdmin,
		}
		if err := userRepo.CreateUser(ctx, user); err != nil {
			log.Fatal("Failed to create user", zap.String("email", su.Email), zap.Error(err))
		}
		log.Info("Created user.", zap.String("id", user.ID), zap.String("email", user.Email), zap.Bool("is_admin", user.IsAdmin))
		userIDs[su.GoogleID] = user.ID
	}

	for _, sl := range seed.Lessons {
		creatorID, ok := userIDs[sl.CreatedBy]
		if !ok {
			log.Fatal("Lesson creator is not in the seed users", zap.String("title", sl.Title), zap.String("created_by", sl.CreatedBy))
		}

		lesson := &domain.Lesson{
			ID:          util.NewULID(),
			Title:       sl.Title,
			Description: sl.Description,
			CreatedBy:   creatorID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := lessonRepo.CreateLesson(ctx, lesson); err != nil {
			log.Fatal("Failed to create lesson", zap.String("title", sl.Title), zap.Error(err))
		}
		log.Info("Created lesson.", zap.String("id", lesson.ID), zap.String("title", lesson.Title))

		for _, googleID := range sl.AssignTo {
			studentID, ok := userIDs[googleID]
			if !ok {
				log.Fatal("Assignment target is not in the seed users", zap.String("title", sl.Title), zap.String("google_id", googleID))
			}
			if err := lessonRepo.AssignLesson(ctx, lesson.ID, studentID); err != nil {
				log.Fatal("Failed to assign lesson", zap.String("title", sl.Title), zap.String("student_id", studentID), zap.Error(err))
			}
			log.Info("Assigned lesson.", zap.String("lesson_id", lesson.ID), zap.String("student_id", studentID))
		}
	}

	log.Info("Initial data seeding process completed.")
}
