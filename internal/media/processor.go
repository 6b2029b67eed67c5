package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"mime"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension caps uploaded avatars and destination photos. Anything
// larger gets downscaled before it reaches object storage.
const DefaultMaxDimension = 1920

const (
	jpegQuality = 3
	pngLevel    = 4
	webpQuality = 85
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
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// FFmpegProcessor shells out to ffmpeg for the actual rescale. Decoding is
// only used to read dimensions, so oversized images never get fully decoded
// in-process.
type FFmpegProcessor struct {
	path         string
	maxDimension int
}

func NewFFmpegProcessor(binaryPath string, maxDimension int) *FFmpegProcessor {
	path := strings.TrimSpace(binaryPath)
	if path == "" {
		path = "ffmpeg"
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &FFmpegProcessor{path: path, maxDimension: maxDimension}
}

func (p *FFmpegProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}

	contentType := normalizeContentType(upload.ContentType, upload.FileName)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: decode dimensions: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("media: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	targetMax := maxDimension
	if targetMax <= 0 {
		targetMax = p.maxDimension
	}
	if cfg.Width <= targetMax && cfg.Height <= targetMax {
		return &Result{Bytes: data, ContentType: contentType, Resized: false}, nil
	}

	width, height := scaleToFit(cfg.Width, cfg.Height, targetMax)
	processed, err := p.transcode(ctx, data, contentType, width, height)
	if err != nil {
		return nil, err
	}
	return &Result{Bytes: processed, ContentType: contentType, Resized: true}, nil
}

func scaleToFit(width, height, maxDim int) (int, int) {
	if width >= height {
		return maxDim, atLeastTwo(int(math.Round(float64(height) * float64(maxDim) / float64(width))))
	}
	return atLeastTwo(int(math.Round(float64(width) * float64(maxDim) / float64(height)))), maxDim
}

func atLeastTwo(v int) int {
	if v < 2 {
		return 2
	}
	return v
}

func (p *FFmpegProcessor) transcode(ctx context.Context, data []byte, contentType string, width, height int) ([]byte, error) {
	codec, args, err := codecArgs(contentType)
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

func codecArgs(contentType string) (string, []string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "mjpeg", []string{"-q:v", strconv.Itoa(jpegQuality)}, nil
	case "image/png":
		return "png", []string{"-compression_level", strconv.Itoa(pngLevel)}, nil
	case "image/webp":
		return "libwebp", []string{"-quality", strconv.Itoa(webpQuality)}, nil
	default:
		return "", nil, fmt.Errorf("media: unsupported content type %s", contentType)
	}
}

func normalizeContentType(value, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(value))
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	if ct != "" {
		return ct
	}
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		if guessed := mime.TypeByExtension(ext); guessed != "" {
			return guessed
		}
	}
	return "application/octet-stream"
}
