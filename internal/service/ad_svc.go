package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ad_generator_v1/internal/config"
	"ad_generator_v1/internal/model"
)

// AdService 广告生成编排：画像 -> 逐个组装 -> 汇总
type AdService struct {
	acquirer  *PersonaAcquirer
	assembler *AdAssembler
	cfg       config.AdsConfig
	log       *zap.Logger
	now       func() time.Time
}

func NewAdService(
	personas PersonaGenerator,
	images ImageGenerator,
	texts TextGenerator,
	prompts PromptBuilder,
	cfg config.AdsConfig,
	log *zap.Logger,
) *AdService {
	return &AdService{
		acquirer:  NewPersonaAcquirer(personas, log),
		assembler: NewAdAssembler(images, texts, prompts, cfg),
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// EffectiveAdCount 实际生成数量 = min(请求数量或默认值, 上限)
func EffectiveAdCount(requested, defaultCount, maxCount int) int {
	count := requested
	if count <= 0 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}
	return count
}

// adOutcome 单个画像的组装结果
type adOutcome struct {
	ad  *model.GeneratedAd
	err error
}

// GenerateAds 生成广告
// 永远返回结构完整的结果：画像获取失败时 Success=false，单条广告失败只会减少数量
func (s *AdService) GenerateAds(ctx context.Context, req model.GenerationRequest) *model.GenerationResult {
	requestID := NewRequestID()
	ctx = WithRequestID(ctx, requestID)
	log := s.log.With(zap.String("request_id", requestID))

	count := EffectiveAdCount(req.Count, s.cfg.DefaultCount, s.cfg.MaxCount)
	log.Info("开始生成广告",
		zap.String("country", req.Country),
		zap.String("language", req.Language),
		zap.Int("count", count))

	personas, ok := s.acquirer.Acquire(ctx, count, req.Country, req.Language)
	if !ok {
		log.Error("画像获取失败，本次请求无法生成广告")
		return s.result(req, requestID, nil, ErrNoPersonas)
	}
	if len(personas) > count {
		personas = personas[:count]
	}
	s.warnDuplicateIDs(log, personas)

	outcomes := s.assembleAll(ctx, personas, req, requestID)

	ads := make([]model.GeneratedAd, 0, len(outcomes))
	failed := 0
	for i, o := range outcomes {
		if o.err != nil {
			failed++
			log.Warn("单条广告生成失败，已跳过",
				zap.String("persona_id", personas[i].ID.String()),
				zap.Error(o.err))
			continue
		}
		ads = append(ads, *o.ad)
	}

	log.Info("广告生成完成",
		zap.Int("personas", len(personas)),
		zap.Int("succeeded", len(ads)),
		zap.Int("failed", failed))
	return s.result(req, requestID, ads, nil)
}

// assembleAll 有界并发组装，结果按画像顺序返回
func (s *AdService) assembleAll(ctx context.Context, personas []model.Persona, req model.GenerationRequest, requestID string) []adOutcome {
	outcomes := make([]adOutcome, len(personas))

	var g errgroup.Group
	g.SetLimit(max(s.cfg.Concurrency, 1))

	for i, p := range personas {
		i, p := i, p
		g.Go(func() error {
			outcomes[i] = s.assembleOne(ctx, p, req, requestID)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// assembleOne 单条组装，带超时与 panic 保护，错误不会影响其他画像
func (s *AdService) assembleOne(ctx context.Context, p model.Persona, req model.GenerationRequest, requestID string) (out adOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = adOutcome{err: fmt.Errorf("组装广告 panic: %v", r)}
		}
	}()

	if s.cfg.AssemblyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AssemblyTimeout)
		defer cancel()
	}

	ad, err := s.assembler.Assemble(ctx, p, req, requestID)
	return adOutcome{ad: ad, err: err}
}

// warnDuplicateIDs 画像ID重复会导致广告ID冲突，这是上游契约问题，只记录不修正
func (s *AdService) warnDuplicateIDs(log *zap.Logger, personas []model.Persona) {
	seen := make(map[string]struct{}, len(personas))
	for _, p := range personas {
		if _, dup := seen[p.ID.String()]; dup {
			log.Warn("画像服务返回了重复的画像ID，广告ID将会冲突", zap.String("persona_id", p.ID.String()))
			continue
		}
		seen[p.ID.String()] = struct{}{}
	}
}

func (s *AdService) result(req model.GenerationRequest, requestID string, ads []model.GeneratedAd, err error) *model.GenerationResult {
	if ads == nil {
		ads = []model.GeneratedAd{}
	}

	res := &model.GenerationResult{
		Success: err == nil,
		Data: model.GenerationData{
			Ads:         ads,
			TotalCount:  len(ads),
			GeneratedAt: s.now().UTC(),
			RequestID:   requestID,
			Targeting: model.TargetingEcho{
				Country:        req.Country,
				Language:       req.Language,
				OriginalPrompt: req.Prompt,
			},
		},
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
