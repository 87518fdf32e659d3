package service

import (
	"bytes"
	"context"
	"io"

	"github.com/njprem/MovieShelf_BackEnd/internal/media"
)

type preparedImage struct {
	reader      io.Reader
	size        int64
	contentType string
	resized     bool
}

// prepareImage runs upload through processor when one is configured.
func prepareImage(ctx context.Context, processor media.Processor, upload media.Upload, maxDimension int) (preparedImage, error) {
	if processor == nil {
		return preparedImage{reader: upload.Reader, size: upload.Size, contentType: upload.ContentType}, nil
	}
	result, err := processor.Process(ctx, upload, maxDimension)
	if err != nil {
		return preparedImage{}, err
	}
	return preparedImage{
		reader:      bytes.NewReader(result.Bytes),
		size:        int64(len(result.Bytes)),
		contentType: result.ContentType,
		resized:     result.Resized,
	}, nil
}
