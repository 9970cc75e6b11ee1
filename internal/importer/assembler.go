package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"lingodeck/internal/domain"
	"lingodeck/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultChoicesPerCard    = 4
	DefaultMaxImageDimension = 500
	defaultConcurrency       = 4
)

// Options control one import batch. Zero values fall back to the defaults.
type Options struct {
	ChoicesPerCard    int
	MaxImageDimension int
	Concurrency       int
}

func (o Options) withDefaults() Options {
	if o.ChoicesPerCard == 0 {
		o.ChoicesPerCard = DefaultChoicesPerCard
	}
	if o.MaxImageDimension == 0 {
		o.MaxImageDimension = DefaultMaxImageDimension
	}
	if o.Concurrency == 0 {
		o.Concurrency = defaultConcurrency
	}
	return o
}

func (o Options) validate() *domain.DomainError {
	if o.ChoicesPerCard < 2 {
		return domain.NewInvalidInputError(fmt.Sprintf("choices per card must be at least 2, got %d", o.ChoicesPerCard))
	}
	if o.MaxImageDimension < 1 {
		return domain.NewInvalidInputError(fmt.Sprintf("max image dimension must be positive, got %d", o.MaxImageDimension))
	}
	if o.Concurrency < 1 {
		return domain.NewInvalidInputError(fmt.Sprintf("concurrency must be positive, got %d", o.Concurrency))
	}
	return nil
}

// Assembler runs the bulk flashcard import pipeline: pair audio with images,
// normalize, pick distractors, persist blobs and records, and report every
// item's outcome. Per-pair failures never abort the batch.
type Assembler struct {
	blobs  domain.BlobStore
	cards  domain.FlashcardRepository
	logger *zap.Logger
}

func NewAssembler(blobs domain.BlobStore, cards domain.FlashcardRepository, logger *zap.Logger) *Assembler {
	return &Assembler{
		blobs:  blobs,
		cards:  cards,
		logger: logger,
	}
}

// ImportBatch processes one uploaded file set for a lesson. Only programmer
// errors (empty lesson id, invalid options) return an error; every per-item
// failure is captured in the report. When the context deadline expires,
// pairs not yet scheduled are reported as timeout failures and already
// completed pairs keep their results.
func (a *Assembler) ImportBatch(ctx context.Context, lessonID string, files []UploadedFile, opts Options) (*BatchReport, error) {
	if strings.TrimSpace(lessonID) == "" {
		return nil, domain.NewInvalidInputError("lesson id is required")
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var audioItems, imageItems []UploadedItem
	for _, f := range files {
		item := NewUploadedItem(f)
		switch item.Category {
		case CategoryAudio:
			audioItems = append(audioItems, item)
		case CategoryImage:
			imageItems = append(imageItems, item)
		default:
			a.logger.Warn("skipping upload with unsupported MIME type",
				zap.String("file", f.DisplayName),
				zap.String("mime_type", f.MIMEType),
			)
		}
	}

	a.logger.Info("starting flashcard import batch",
		zap.String("lesson_id", lessonID),
		zap.Int("audio_files", len(audioItems)),
		zap.Int("image_files", len(imageItems)),
		zap.Int("choices_per_card", opts.ChoicesPerCard),
	)

	pairs, unmatched := MatchPairs(audioItems, imageItems)

	// One result slot per audio item, indexed by input position.
	results := make([]ItemResult, len(audioItems))
	for _, u := range unmatched {
		results[u.AudioIndex] = ItemResult{
			AudioDisplayName: u.Item.DisplayName,
			Err:              domain.NewUnmatchedAudioError(u.Item.DisplayName),
		}
	}

	normalizer := NewNormalizer(opts.MaxImageDimension)
	selector := NewDistractorSelector(imageItems, pairs, opts.ChoicesPerCard)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, pair := range pairs {
		if ctx.Err() != nil {
			results[pair.AudioIndex] = ItemResult{
				AudioDisplayName: pair.Audio.DisplayName,
				Err:              domain.NewBatchTimeoutError(),
			}
			continue
		}

		pair := pair
		g.Go(func() error {
			card, derr := a.processPair(gctx, lessonID, pair, normalizer, selector)
			if derr != nil {
				a.logger.Warn("flashcard import item failed",
					zap.String("lesson_id", lessonID),
					zap.String("audio", pair.Audio.DisplayName),
					zap.String("code", string(derr.Code)),
					zap.Error(derr),
				)
				results[pair.AudioIndex] = ItemResult{AudioDisplayName: pair.Audio.DisplayName, Err: derr}
				return nil
			}
			results[pair.AudioIndex] = ItemResult{AudioDisplayName: pair.Audio.DisplayName, Flashcard: card}
			return nil
		})
	}
	// Workers never return errors; failures are recorded per item.
	_ = g.Wait()

	report := &BatchReport{TotalPairs: len(results), Items: results}
	for _, r := range results {
		if r.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	a.logger.Info("flashcard import batch finished",
		zap.String("lesson_id", lessonID),
		zap.Int("total", report.TotalPairs),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (a *Assembler) processPair(ctx context.Context, lessonID string, pair MatchedPair, normalizer *Normalizer, selector *DistractorSelector) (*domain.Flashcard, *domain.DomainError) {
	if ctx.Err() != nil {
		return nil, domain.NewBatchTimeoutError()
	}

	correctBlob, correctFormat, err := normalizer.Normalize(pair.CorrectImage.Bytes)
	if err != nil {
		return nil, domain.NewImageProcessingError(pair.CorrectImage.DisplayName, err)
	}

	distractors, derr := selector.Select(pair.CorrectImage)
	if derr != nil {
		return nil, derr
	}

	distractorBlobs := make([][]byte, 0, len(distractors))
	formats := make([]string, 0, len(distractors))
	for _, d := range distractors {
		blob, format, err := normalizer.Normalize(d.Bytes)
		if err != nil {
			// One bad distractor invalidates the whole card; nothing has
			// been persisted for it yet.
			return nil, domain.NewImageProcessingError(d.DisplayName, err)
		}
		distractorBlobs = append(distractorBlobs, blob)
		formats = append(formats, format)
	}

	ordered, correctIndex := selector.PlaceCorrect(distractorBlobs, correctBlob)
	orderedFormats := make([]string, 0, len(ordered))
	orderedFormats = append(orderedFormats, formats[:correctIndex]...)
	orderedFormats = append(orderedFormats, correctFormat)
	orderedFormats = append(orderedFormats, formats[correctIndex:]...)

	var written []domain.BlobRef
	cleanup := func() {
		// Orphaned blobs are a lesser defect than a partially persisted
		// record, so cleanup failures are only logged.
		cleanupCtx := context.WithoutCancel(ctx)
		for _, ref := range written {
			if err := a.blobs.Delete(cleanupCtx, ref); err != nil {
				a.logger.Warn("failed to clean up blob after import failure",
					zap.String("ref", string(ref)),
					zap.Error(err),
				)
			}
		}
	}

	audioKey := blobKey(lessonID, extensionOf(pair.Audio.DisplayName))
	audioRef, err := a.blobs.Put(ctx, audioKey, pair.Audio.Bytes)
	if err != nil {
		return nil, domain.NewStorageFailureError(err)
	}
	written = append(written, audioRef)

	imageRefs := make([]domain.BlobRef, 0, len(ordered))
	for i, blob := range ordered {
		ref, err := a.blobs.Put(ctx, blobKey(lessonID, "."+orderedFormats[i]), blob)
		if err != nil {
			cleanup()
			return nil, domain.NewStorageFailureError(err)
		}
		written = append(written, ref)
		imageRefs = append(imageRefs, ref)
	}

	now := time.Now()
	card := &domain.Flashcard{
		ID:           util.NewULID(),
		LessonID:     lessonID,
		AudioRef:     audioRef,
		ImageChoices: imageRefs,
		CorrectIndex: correctIndex,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.cards.CreateFlashcard(ctx, card); err != nil {
		cleanup()
		return nil, domain.NewStorageFailureError(err)
	}
	return card, nil
}

func blobKey(lessonID, ext string) string {
	return fmt.Sprintf("lessons/%s/%s%s", lessonID, util.NewULID(), ext)
}

func extensionOf(displayName string) string {
	ext := strings.ToLower(filepath.Ext(displayName))
	if ext == "" {
		ext = ".bin"
	}
	return ext
}
