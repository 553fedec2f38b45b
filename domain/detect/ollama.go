package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/ollama/ollama/api"
	"github.com/pkg/errors"

	"github.com/soocke/boxlabel-go/domain/annotation"
)

// maxUploadSide bounds the longer side of images sent to the model.
const maxUploadSide = 1280

// OllamaDetector asks a vision model served by Ollama for labeled boxes.
type OllamaDetector struct {
	client  *api.Client
	model   string
	labels  []string
	timeout time.Duration
	logger  *slog.Logger
}

// NewOllamaDetector creates a detector talking to the Ollama server at rawURL.
func NewOllamaDetector(rawURL, model string, labels []string, timeout time.Duration, logger *slog.Logger) (*OllamaDetector, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ollama url")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("invalid ollama url %q", rawURL)
	}
	if model == "" {
		return nil, errors.New("ollama model is required")
	}
	// The client is rooted at scheme://host; any path such as /api/chat is dropped.
	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return &OllamaDetector{
		client:  api.NewClient(base, http.DefaultClient),
		model:   model,
		labels:  labels,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (d *OllamaDetector) Name() string { return "ollama:" + d.model }

// Detect sends img to the model and parses its JSON answer.
func (d *OllamaDetector) Detect(ctx context.Context, img image.Image) ([]Detection, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	if _, ok := ctx.Deadline(); !ok && d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	upload := img
	if b := img.Bounds(); b.Dx() > maxUploadSide || b.Dy() > maxUploadSide {
		upload = imaging.Fit(img, maxUploadSide, maxUploadSide, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, upload, imaging.PNG); err != nil {
		return nil, errors.Wrap(err, "encode upload")
	}

	stream := false
	req := &api.ChatRequest{
		Model: d.model,
		Messages: []api.Message{{
			Role:    "user",
			Content: buildPrompt(d.labels),
			Images:  []api.ImageData{api.ImageData(buf.Bytes())},
		}},
		Stream:  &stream,
		Format:  json.RawMessage(`"json"`),
		Options: map[string]any{"temperature": 0},
	}
	start := time.Now()
	var content string
	err := d.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content += resp.Message.Content
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "ollama chat")
	}
	b := img.Bounds()
	dets, err := parseObjects(content, annotation.Size{W: b.Dx(), H: b.Dy()})
	if err != nil {
		return nil, err
	}
	if d.logger != nil {
		d.logger.Debug("ollama detection", "model", d.model, "objects", len(dets), "duration", time.Since(start))
	}
	return dets, nil
}

func buildPrompt(labels []string) string {
	return fmt.Sprintf(`Find every object in this image that belongs to one of these categories: %s.
Answer with JSON only, in this exact shape:
{"objects":[{"label":"<category>","score":<0..1>,"box":[xmin,ymin,xmax,ymax]}]}
Box coordinates are fractions of the image width and height in [0,1].
Return {"objects":[]} when nothing is found.`, strings.Join(labels, ", "))
}

type modelObject struct {
	Label string    `json:"label"`
	Score float64   `json:"score"`
	Box   []float64 `json:"box"`
}

type modelAnswer struct {
	Objects []modelObject `json:"objects"`
}

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// sanitizeJSON strips code fences, trailing commas and text around the
// outermost object, which vision models commonly add.
func sanitizeJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = trailingComma.ReplaceAllString(raw, "$1")
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}

// parseObjects decodes the model answer into pixel-space detections for an
// image of size src. Entries with malformed boxes are skipped.
func parseObjects(raw string, src annotation.Size) ([]Detection, error) {
	var ans modelAnswer
	if err := json.Unmarshal([]byte(sanitizeJSON(raw)), &ans); err != nil {
		return nil, errors.Wrap(err, "decode model answer")
	}
	out := make([]Detection, 0, len(ans.Objects))
	for _, o := range ans.Objects {
		if len(o.Box) != 4 {
			continue
		}
		r := FromNormalized(o.Box[0], o.Box[1], o.Box[2], o.Box[3], src)
		if r.Empty() {
			continue
		}
		score := o.Score
		if score <= 0 {
			score = 1
		}
		out = append(out, Detection{Rect: r, Label: o.Label, Score: score})
	}
	return out, nil
}
