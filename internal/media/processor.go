package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxDimension bounds the longest edge of a mirrored poster.
	DefaultMaxDimension = 780
	defaultJPEGQuality  = 4
	defaultWebPQuality  = 80
)

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// FFMPEGProcessor downsizes posters that exceed the bound by piping them through ffmpeg.
// Posters already within bounds are returned untouched and ffmpeg is never started.
type FFMPEGProcessor struct {
	path         string
	maxDimension int
	jpegQuality  int
	webpQuality  int
}

func NewFFMPEGProcessor(binaryPath string, maxDimension int) *FFMPEGProcessor {
	path := strings.TrimSpace(binaryPath)
	if path == "" {
		path = "ffmpeg"
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &FFMPEGProcessor{
		path:         path,
		maxDimension: maxDimension,
		jpegQuality:  defaultJPEGQuality,
		webpQuality:  defaultWebPQuality,
	}
}

func (p *FFMPEGProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read poster: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty poster data")
	}

	width, height, format, err := decodeDimensions(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: decode dimensions: %w", err)
	}
	contentType := resolveContentType(upload.ContentType, upload.FileName, format)

	targetMax := maxDimension
	if targetMax <= 0 {
		targetMax = p.maxDimension
	}
	if width <= targetMax && height <= targetMax {
		return &Result{Bytes: data, ContentType: contentType, Width: width, Height: height}, nil
	}

	targetW, targetH := scaleToFit(width, height, targetMax)
	processed, err := p.transcode(ctx, data, contentType, targetW, targetH)
	if err != nil {
		return nil, err
	}
	return &Result{
		Bytes:       processed,
		ContentType: contentType,
		Width:       targetW,
		Height:      targetH,
		Resized:     true,
	}, nil
}

func decodeDimensions(r io.Reader) (int, int, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, "", fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, format, nil
}

// scaleToFit keeps the aspect ratio and makes the longest edge maxDim.
func scaleToFit(width, height, maxDim int) (int, int) {
	if width >= height {
		newH := int(math.Round(float64(height) * float64(maxDim) / float64(width)))
		return evenAtLeastTwo(maxDim), evenAtLeastTwo(newH)
	}
	newW := int(math.Round(float64(width) * float64(maxDim) / float64(height)))
	return evenAtLeastTwo(newW), evenAtLeastTwo(maxDim)
}

func evenAtLeastTwo(value int) int {
	if value < 2 {
		return 2
	}
	return value &^ 1
}

func (p *FFMPEGProcessor) transcode(ctx context.Context, data []byte, contentType string, width, height int) ([]byte, error) {
	codec, args, err := p.codecArgs(contentType)
	if err != nil {
		return nil, err
	}

	cmdArgs := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vf", fmt.Sprintf("scale=%d:%d:flags=lanczos", width, height),
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", codec,
	}
	cmdArgs = append(cmdArgs, args...)
	cmdArgs = append(cmdArgs, "pipe:1")

	cmd := exec.CommandContext(ctx, p.path, cmdArgs...)
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ffmpeg: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg: produced empty output")
	}
	return stdout.Bytes(), nil
}

func (p *FFMPEGProcessor) codecArgs(contentType string) (string, []string, error) {
	switch contentType {
	case "image/jpeg":
		return "mjpeg", []string{"-q:v", strconv.Itoa(p.jpegQuality)}, nil
	case "image/png":
		return "png", nil, nil
	case "image/webp":
		return "libwebp", []string{"-quality", strconv.Itoa(p.webpQuality)}, nil
	default:
		return "", nil, fmt.Errorf("media: unsupported content type %s", contentType)
	}
}

// resolveContentType prefers the decoded format, then the declared type, then the extension.
func resolveContentType(declared, fileName, format string) string {
	switch format {
	case "jpeg", "png", "gif", "webp":
		return "image/" + format
	}
	ct := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	if strings.HasPrefix(ct, "image/") {
		return ct
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return "image/jpeg"
}

// SniffContentType guesses an image type from the leading bytes.
func SniffContentType(data []byte) string {
	ct := http.DetectContentType(data)
	if strings.HasPrefix(ct, "image/") {
		return ct
	}
	return "image/jpeg"
}
