package service

import (
	"context"
	"io"

	"github.com/njprem/MovieShelf_BackEnd/internal/media"
)

// stubPosterProcessor replaces every poster with output.
type stubPosterProcessor struct {
	output []byte
	err    error

	calls   int
	lastMax int
	input   []byte
}

func (s *stubPosterProcessor) Process(ctx context.Context, upload media.Upload, maxDimension int) (*media.Result, error) {
	s.calls++
	s.lastMax = maxDimension
	if upload.Reader != nil {
		s.input, _ = io.ReadAll(upload.Reader)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &media.Result{
		Bytes:       append([]byte(nil), s.output...),
		ContentType: upload.ContentType,
		Resized:     true,
	}, nil
}
