package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"lingodeck/internal/config"
	"lingodeck/internal/database"
	"lingodeck/internal/importer"
	"lingodeck/internal/logger"
	"lingodeck/internal/repository"
	"lingodeck/internal/storage"

	"go.uber.org/zap"
)

// import_flashcards runs the bulk import pipeline against a local directory
// of audio and image files, without going through the HTTP API. Useful for
// seeding large lessons from prepared media sets.
func main() {
	lessonID := flag.String("lesson", "", "target lesson id (required)")
	mediaDir := flag.String("dir", "", "directory holding audio and image files (required)")
	choices := flag.Int("choices", importer.DefaultChoicesPerCard, "image choices per card")
	maxDim := flag.Int("max-dimension", importer.DefaultMaxImageDimension, "maximum image dimension in pixels")
	flag.Parse()

	if *lessonID == "" || *mediaDir == "" {
		flag.Usage()
		os.Exit(2)
	}

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

	log.Info("Import batch starting up...",
		zap.String("lesson_id", *lessonID),
		zap.String("media_dir", *mediaDir))

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	blobStore, err := storage.NewLocalBlobStore(cfg.Storage.BlobDir)
	if err != nil {
		log.Fatal("Failed to initialize blob store", zap.Error(err))
	}

	files, err := loadMediaDir(*mediaDir)
	if err != nil {
		log.Fatal("Failed to read media directory", zap.Error(err))
	}
	if len(files) == 0 {
		log.Fatal("Media directory holds no files", zap.String("dir", *mediaDir))
	}
	log.Info("Loaded media files", zap.Int("count", len(files)))

	lessonRepo := repository.NewLessonDatabaseAdapter(db)
	ctx := context.Background()
	lesson, err := lessonRepo.GetLessonByID(ctx, *lessonID)
	if err != nil {
		log.Fatal("Failed to look up lesson", zap.Error(err))
	}
	if lesson == nil {
		log.Fatal("Lesson not found", zap.String("lesson_id", *lessonID))
	}

	assembler := importer.NewAssembler(blobStore, repository.NewFlashcardDatabaseAdapter(db), log)
	report, err := assembler.ImportBatch(ctx, *lessonID, files, importer.Options{
		ChoicesPerCard:    *choices,
		MaxImageDimension: *maxDim,
		Concurrency:       cfg.Import.Concurrency,
	})
	if err != nil {
		log.Fatal("Import batch failed", zap.Error(err))
	}

	log.Info("Import batch finished",
		zap.Int("total_pairs", report.TotalPairs),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	for _, item := range report.Items {
		if item.Succeeded() {
			fmt.Printf("OK    %s -> %s\n", item.AudioDisplayName, item.Flashcard.ID)
		} else {
			fmt.Printf("FAIL  %s: %s (%s)\n", item.AudioDisplayName, item.Err.Message, item.Err.Code)
		}
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}

// loadMediaDir reads every regular file in dir into an UploadedFile. The MIME
// type comes from the extension when known, otherwise from content sniffing.
func loadMediaDir(dir string) ([]importer.UploadedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	files := make([]importer.UploadedFile, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		mimeType := mime.TypeByExtension(filepath.Ext(name))
		if mimeType == "" {
			mimeType = http.DetectContentType(data)
		}
		files = append(files, importer.UploadedFile{
			DisplayName: name,
			MIMEType:    mimeType,
			Bytes:       data,
		})
	}
	return files, nil
}
