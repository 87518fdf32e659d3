package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/google/uuid"

	"github.com/njprem/MovieShelf_BackEnd/internal/media"
	"github.com/njprem/MovieShelf_BackEnd/internal/repository/ports"
)

var (
	ErrPosterMirrorDisabled = errors.New("poster mirror is not configured")
	ErrInvalidPosterPath    = errors.New("invalid poster path")
)

const (
	DefaultPosterMaxDimension = 780
	posterObjectPrefix        = "posters"
)

var posterPathPattern = regexp.MustCompile(`^/[A-Za-z0-9_-]+\.(jpg|jpeg|png|webp)$`)

type PosterService struct {
	source       ports.PosterSource
	storage      ports.ObjectStorage
	processor    media.Processor
	favorites    *FavoriteService
	bucket       string
	maxDimension int
}

// MirrorReport maps list ranks to mirrored poster URLs. Ranks whose poster
// could not be mirrored are listed in Failed with the reason.
type MirrorReport struct {
	URLs   map[int]string `json:"urls"`
	Failed map[int]string `json:"failed,omitempty"`
}

func NewPosterService(source ports.PosterSource, storage ports.ObjectStorage, processor media.Processor, favorites *FavoriteService, bucket string, maxDimension int) *PosterService {
	if maxDimension <= 0 {
		maxDimension = DefaultPosterMaxDimension
	}
	return &PosterService{
		source:       source,
		storage:      storage,
		processor:    processor,
		favorites:    favorites,
		bucket:       bucket,
		maxDimension: maxDimension,
	}
}

func (s *PosterService) Enabled() bool {
	return s != nil && s.storage != nil && s.source != nil && s.bucket != ""
}

// Mirror copies a catalog poster into object storage once and returns its public URL.
func (s *PosterService) Mirror(ctx context.Context, posterPath string) (string, error) {
	if !s.Enabled() {
		return "", ErrPosterMirrorDisabled
	}
	if !posterPathPattern.MatchString(posterPath) {
		return "", ErrInvalidPosterPath
	}
	objectName := posterObjectPrefix + posterPath

	exists, err := s.storage.Exists(ctx, s.bucket, objectName)
	if err != nil {
		return "", err
	}
	if exists {
		return s.storage.PublicURL(s.bucket, objectName), nil
	}

	data, contentType, err := s.source.FetchPoster(ctx, posterPath)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = media.SniffContentType(data)
	}
	upload := media.Upload{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		FileName:    posterPath,
		ContentType: contentType,
	}
	img, err := prepareImage(ctx, s.processor, upload, s.maxDimension)
	if err != nil {
		return "", fmt.Errorf("process poster %s: %w", posterPath, err)
	}
	if img.resized {
		log.Printf("posters: resized %s to fit %dpx", posterPath, s.maxDimension)
	}
	return s.storage.Upload(ctx, s.bucket, objectName, img.contentType, img.reader, img.size)
}

func (s *PosterService) MirrorFavorites(ctx context.Context, profileID uuid.UUID) (*MirrorReport, error) {
	if !s.Enabled() {
		return nil, ErrPosterMirrorDisabled
	}
	report := &MirrorReport{URLs: make(map[int]string), Failed: make(map[int]string)}
	for _, entry := range s.favorites.List(ctx, profileID).Entries() {
		if entry.PosterPath == nil {
			continue
		}
		url, err := s.Mirror(ctx, *entry.PosterPath)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			report.Failed[entry.Rank] = err.Error()
			continue
		}
		report.URLs[entry.Rank] = url
	}
	return report, nil
}
