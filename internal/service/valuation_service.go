package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trashit/internal/config"
	"trashit/internal/domain"
	"trashit/internal/metrics"
	"trashit/internal/port"
	"trashit/internal/valuation"
	"trashit/internal/vision"
)

const archiveTimeout = 30 * time.Second

// AnalyzeInput is the DTO for one image analysis request.
type AnalyzeInput struct {
	File     io.Reader
	Filename string
}

// ValuationService defines the image analysis contract.
type ValuationService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*domain.ValuationResponse, error)
	// Wait blocks until background archive uploads have finished.
	Wait()
}

type valuationService struct {
	classifier port.VisionClassifier
	cache      port.ClassificationCache
	archive    port.ObjectStorage
	tables     valuation.Tables
	uploadCfg  *config.UploadConfig
	visionCfg  *config.VisionConfig
	archiveCfg *config.ArchiveConfig
	logger     *zap.Logger
	now        func() time.Time

	// cacheVersion prefixes cache keys with the prompt and provider/model fingerprint.
	cacheVersion string
	archiving    sync.WaitGroup
}

// NewValuationService creates a new ValuationService implementation.
// cache may be nil when classification caching is disabled.
func NewValuationService(
	classifier port.VisionClassifier,
	cache port.ClassificationCache,
	archive port.ObjectStorage,
	tables valuation.Tables,
	cfg *config.Config,
	logger *zap.Logger,
) ValuationService {
	return &valuationService{
		classifier: classifier,
		cache:      cache,
		archive:    archive,
		tables:     tables,
		uploadCfg:  &cfg.Upload,
		visionCfg:  &cfg.Vision,
		archiveCfg: &cfg.Archive,
		logger:     logger,
		now:        time.Now,

		cacheVersion: vision.Fingerprint(&cfg.Vision),
	}
}

func (s *valuationService) Analyze(ctx context.Context, input AnalyzeInput) (*domain.ValuationResponse, error) {
	image, contentType, err := s.readImage(input.File)
	if err != nil {
		metrics.ValuationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	sum := sha256.Sum256(image)
	digest := hex.EncodeToString(sum[:])
	log := s.logger.With(zap.String("image_sha256", digest), zap.String("content_type", contentType))

	cacheKey := s.cacheVersion + ":" + digest
	vr, cached, err := s.classify(ctx, log, image, contentType, cacheKey)
	if err != nil {
		if errors.Is(err, domain.ErrUnparseableVisionResponse) {
			metrics.ValuationsTotal.WithLabelValues("unparseable").Inc()
		} else {
			metrics.ValuationsTotal.WithLabelValues("vision_error").Inc()
		}
		return nil, err
	}

	v, err := valuation.Evaluate(s.tables, vr)
	if err != nil {
		if errors.Is(err, domain.ErrUnparseableVisionResponse) {
			metrics.ValuationsTotal.WithLabelValues("unparseable").Inc()
			log.Warn("classification rejected by pricing", zap.Error(err))
		} else {
			metrics.ValuationsTotal.WithLabelValues("error").Inc()
		}
		return nil, fmt.Errorf("evaluating classification: %w", err)
	}

	if !cached && s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, vr); err != nil {
			log.Warn("classification cache write failed", zap.Error(err))
		}
	}

	s.archiving.Add(1)
	go func() {
		defer s.archiving.Done()
		s.archiveImage(ctx, log, image, contentType)
	}()

	metrics.ValuationsTotal.WithLabelValues("success").Inc()
	metrics.GradesAssigned.WithLabelValues(string(v.Grade)).Inc()
	log.Info("waste analyzed",
		zap.String("waste_type", vr.WasteType),
		zap.String("grade", string(v.Grade)),
		zap.Float64("price_per_kg", v.Pricing.Price),
		zap.Bool("ai_verified", v.AIVerified),
	)

	return &domain.ValuationResponse{
		WasteType:         vr.WasteType,
		Condition:         vr.Condition,
		UsabilityScore:    vr.UsabilityScore,
		QualityGrade:      v.Grade,
		MaterialsDetected: vr.MaterialsDetected,
		Pricing: domain.Pricing{
			PricePerKg: v.Pricing.Price,
			PriceRange: v.Pricing.Range,
		},
		PricingBreakdown:  v.Pricing.Breakdown,
		VendorTrustScore:  v.TrustScore,
		RecommendedBuyers: v.Buyers,
		AIVerified:        v.AIVerified,
	}, nil
}

// readImage enforces the size limit and sniffs the content type from the bytes.
func (s *valuationService) readImage(r io.Reader) ([]byte, string, error) {
	if r == nil {
		return nil, "", domain.ErrMissingFile
	}
	maxBytes := s.uploadCfg.MaxBytes()
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", domain.ErrEmptyFile
	}
	if int64(len(data)) > maxBytes {
		return nil, "", domain.ErrFileTooLarge
	}

	contentType := http.DetectContentType(data)
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return nil, "", domain.ErrUnsupportedFileType
	}
	return data, contentType, nil
}

// classify returns the cached classification for the image, or calls the
// vision classifier once under the request timeout. The caller caches the
// result once it has been valued.
func (s *valuationService) classify(ctx context.Context, log *zap.Logger, image []byte, contentType, cacheKey string) (*domain.VisionResult, bool, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("error").Inc()
			log.Warn("classification cache read failed", zap.Error(err))
		case cached != nil:
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			log.Debug("classification cache hit")
			return cached, true, nil
		default:
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	callCtx := ctx
	if s.visionCfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.visionCfg.RequestTimeout)
		defer cancel()
	}

	out, err := s.classifier.Classify(callCtx, port.ClassifyInput{ImageBytes: image, ContentType: contentType})
	if err != nil {
		log.Error("vision classification failed", zap.Error(err))
		return nil, false, mapVisionError(err)
	}

	vr, err := vision.ParseVisionResult(out.Text)
	if err != nil {
		log.Warn("vision response rejected", zap.String("provider", out.Provider), zap.Error(err))
		return nil, false, err
	}
	log.Debug("vision classification", zap.String("provider", out.Provider), zap.String("model", out.ModelUsed))
	return vr, false, nil
}

// archiveImage stores the analyzed image. It runs after the response has been
// built, under a context detached from the request. Failures are only logged.
func (s *valuationService) archiveImage(ctx context.Context, log *zap.Logger, image []byte, contentType string) {
	if s.archive == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	key := path.Join(s.archiveCfg.Prefix, s.now().UTC().Format("2006/01/02"), uuid.New().String()+domain.AllowedContentTypes[contentType])
	out, err := s.archive.Upload(ctx, port.UploadInput{
		Bucket:      s.archiveCfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(image),
		ContentType: contentType,
		Size:        int64(len(image)),
	})
	if err != nil {
		metrics.ArchiveUploads.WithLabelValues("failure").Inc()
		log.Warn("archiving upload failed", zap.String("key", key), zap.Error(err))
		return
	}
	metrics.ArchiveUploads.WithLabelValues("success").Inc()
	log.Debug("upload archived", zap.String("location", out.Location))
}

func (s *valuationService) Wait() {
	s.archiving.Wait()
}

// mapVisionError converts classifier failures into domain errors, keeping the
// original error in the chain.
func mapVisionError(err error) error {
	var rlErr *vision.RateLimitError
	var netErr net.Error
	switch {
	case errors.As(err, &rlErr):
		return fmt.Errorf("%w: %w", domain.ErrVisionRateLimited, err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %w", domain.ErrVisionTimeout, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrVisionUnavailable, err)
	}
}
