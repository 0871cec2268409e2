package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ad_generator_v1/internal/config"
	"ad_generator_v1/internal/model"
)

// WorkerName 健康报告中的服务标识
const WorkerName = "ad-generator"

// HealthService 并发探测三个依赖服务
type HealthService struct {
	personas PersonaGenerator
	images   ImageGenerator
	texts    TextGenerator

	probeMode    string
	probeTimeout time.Duration

	log *zap.Logger
	now func() time.Time
}

func NewHealthService(
	personas PersonaGenerator,
	images ImageGenerator,
	texts TextGenerator,
	probeMode string,
	probeTimeout time.Duration,
	log *zap.Logger,
) *HealthService {
	if probeMode == "" {
		probeMode = config.ProbeModeHealth
	}
	return &HealthService{
		personas:     personas,
		images:       images,
		texts:        texts,
		probeMode:    probeMode,
		probeTimeout: probeTimeout,
		log:          log,
		now:          time.Now,
	}
}

// Check 探测失败只会把对应服务标记为 false，不返回错误
func (s *HealthService) Check(ctx context.Context) *model.HealthReport {
	var personaOK, imageOK, textOK bool

	var g errgroup.Group
	g.Go(func() error {
		personaOK = s.probe(ctx, model.ServicePersona, s.probePersona)
		return nil
	})
	g.Go(func() error {
		imageOK = s.probe(ctx, model.ServiceImage, s.probeImage)
		return nil
	})
	g.Go(func() error {
		textOK = s.probe(ctx, model.ServiceText, s.probeText)
		return nil
	})
	_ = g.Wait()

	return &model.HealthReport{
		Success: personaOK && imageOK && textOK,
		Data: model.HealthData{
			Services: map[string]bool{
				model.ServicePersona: personaOK,
				model.ServiceImage:   imageOK,
				model.ServiceText:    textOK,
			},
			Timestamp: s.now().UTC(),
			Worker:    WorkerName,
		},
	}
}

// probe 带超时执行单个探测，panic 视为失败
func (s *HealthService) probe(ctx context.Context, name string, fn func(context.Context) error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("依赖探测 panic", zap.String("service", name), zap.Any("panic", r))
			ok = false
		}
	}()

	if s.probeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.probeTimeout)
		defer cancel()
	}

	if err := fn(ctx); err != nil {
		s.log.Warn("依赖探测失败", zap.String("service", name), zap.Error(err))
		return false
	}
	return true
}

func (s *HealthService) probePersona(ctx context.Context) error {
	_, err := s.personas.GetInfo(ctx)
	return err
}

func (s *HealthService) probeText(ctx context.Context) error {
	ok, err := s.texts.Health(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errTextUnhealthy
	}
	return nil
}

// probeImage generate 模式会真实生成一张图片，会产生费用
func (s *HealthService) probeImage(ctx context.Context) error {
	if s.probeMode != config.ProbeModeGenerate {
		return s.images.HealthCheck(ctx)
	}

	raw, err := s.images.GenerateImage(ctx, "test", model.ImageOptions{Count: 1})
	if err != nil {
		return err
	}
	_, err = NormalizeImageResponse(raw, "test", "")
	return err
}
