package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nedaZarei/WeddingSite/pkg/metrics"
	"github.com/nedaZarei/WeddingSite/pkg/models"
	"github.com/nedaZarei/WeddingSite/pkg/storage"
)

// Policy decides what happens after one image fails.
type Policy int

const (
	// AllOrNothing stops at the first failure and returns it.
	AllOrNothing Policy = iota
	// BestEffort records the failure and moves on to the next image.
	BestEffort
)

// ScriptFetchTimeout bounds each download made by the mirror-images command.
const ScriptFetchTimeout = 30 * time.Second

var ErrNothingUploaded = errors.New("no images were uploaded successfully")

type Config struct {
	CDNHost      string
	AccessKey    string
	PublicBucket string
	Policy       Policy
}

type Failure struct {
	Source models.ImageSource
	Err    error
}

type Result struct {
	Images   []models.MirroredImage
	Failures []Failure
}

type Mirror struct {
	cfg      Config
	client   *http.Client
	store    storage.ObjectStore
	log      *zap.Logger
	progress io.Writer
}

func New(cfg Config, client *http.Client, store storage.ObjectStore, log *zap.Logger) *Mirror {
	if client == nil {
		client = &http.Client{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Mirror{cfg: cfg, client: client, store: store, log: log}
}

// WithProgress returns a copy of m that also writes each download and upload
// step to w as plain text lines.
func (m *Mirror) WithProgress(w io.Writer) *Mirror {
	c := *m
	c.progress = w
	return &c
}

func (m *Mirror) printf(format string, args ...any) {
	if m.progress != nil {
		fmt.Fprintf(m.progress, format+"\n", args...)
	}
}

// Run downloads every source in order and uploads it under its key.
// With AllOrNothing the first error is returned as is. With BestEffort an error
// is returned only when nothing was uploaded.
func (m *Mirror) Run(ctx context.Context, sources []models.ImageSource) (*Result, error) {
	result := &Result{Images: []models.MirroredImage{}}
	for _, src := range sources {
		image, err := m.mirrorOne(ctx, src)
		if err != nil {
			metrics.MirroredImages.WithLabelValues("failed").Inc()
			m.log.Error("failed to mirror image", zap.String("url", src.URL), zap.String("key", src.Key), zap.Error(err))
			if m.cfg.Policy == AllOrNothing {
				return result, err
			}
			result.Failures = append(result.Failures, Failure{Source: src, Err: err})
			continue
		}
		metrics.MirroredImages.WithLabelValues("uploaded").Inc()
		result.Images = append(result.Images, image)
	}

	if m.cfg.Policy == BestEffort && len(result.Images) == 0 && len(sources) > 0 {
		return result, ErrNothingUploaded
	}
	return result, nil
}

func (m *Mirror) mirrorOne(ctx context.Context, src models.ImageSource) (models.MirroredImage, error) {
	m.log.Info("downloading image", zap.String("url", src.URL))
	m.printf("Downloading image from %s...", src.URL)
	data, err := m.download(ctx, src.URL)
	if err != nil {
		m.printf("Error processing %s: %v", src.URL, err)
		return models.MirroredImage{}, err
	}
	m.log.Info("downloaded image", zap.String("url", src.URL), zap.Int("bytes", len(data)))
	m.printf("Downloaded %d bytes", len(data))

	m.printf("Uploading to storage: %s/%s...", m.cfg.PublicBucket, src.Key)
	if err := m.store.PutObject(ctx, src.Key, data, storage.ContentTypePNG); err != nil {
		m.printf("Error uploading %s: %v", src.Key, err)
		m.printf("Failed to upload %s", src.Key)
		return models.MirroredImage{}, err
	}
	url := storage.PublicURL(m.cfg.CDNHost, m.cfg.AccessKey, m.cfg.PublicBucket, src.Key)
	m.log.Info("uploaded image", zap.String("key", src.Key), zap.String("cdn_url", url))
	m.printf("Successfully uploaded %s", src.Key)
	m.printf("CDN URL: %s", url)
	return models.MirroredImage{Key: src.Key, URL: url}, nil
}

func (m *Mirror) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to download %s: status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}
