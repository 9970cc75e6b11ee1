package importer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"lingodeck/internal/domain"
)

// pngBytes builds a solid-color PNG so each test image has distinct content.
func pngBytes(width, height int, c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func audioFile(name string) UploadedFile {
	return UploadedFile{DisplayName: name, MIMEType: "audio/mpeg", Bytes: []byte("audio:" + name)}
}

func imageFile(name string, data []byte) UploadedFile {
	return UploadedFile{DisplayName: name, MIMEType: "image/png", Bytes: data}
}

// memBlobStore is an in-memory domain.BlobStore.
type memBlobStore struct {
	mu    sync.Mutex
	blobs map[domain.BlobRef][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[domain.BlobRef][]byte)}
}

func (s *memBlobStore) Put(_ context.Context, key string, data []byte) (domain.BlobRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := domain.BlobRef(key)
	s.blobs[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (s *memBlobStore) Get(_ context.Context, ref domain.BlobRef) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[ref]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", ref)
	}
	return data, nil
}

func (s *memBlobStore) Delete(_ context.Context, ref domain.BlobRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, ref)
	return nil
}

// failingBlobStore fails every Put after allowing the first n.
type failingBlobStore struct {
	*memBlobStore
	mu      sync.Mutex
	allowed int
}

func (s *failingBlobStore) Put(ctx context.Context, key string, data []byte) (domain.BlobRef, error) {
	s.mu.Lock()
	ok := s.allowed > 0
	if ok {
		s.allowed--
	}
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("disk full")
	}
	return s.memBlobStore.Put(ctx, key, data)
}

// memCardRepo is an in-memory domain.FlashcardRepository.
type memCardRepo struct {
	mu    sync.Mutex
	cards []*domain.Flashcard
	fail  bool
}

func (r *memCardRepo) CreateFlashcard(_ context.Context, card *domain.Flashcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return fmt.Errorf("insert failed")
	}
	r.cards = append(r.cards, card)
	return nil
}

func (r *memCardRepo) GetFlashcardByID(_ context.Context, id string) (*domain.Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCardRepo) GetFlashcardsByLesson(_ context.Context, lessonID string) ([]*domain.Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Flashcard
	for _, c := range r.cards {
		if c.LessonID == lessonID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCardRepo) DeleteFlashcard(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.cards {
		if c.ID == id {
			r.cards = append(r.cards[:i], r.cards[i+1:]...)
			return nil
		}
	}
	return nil
}
