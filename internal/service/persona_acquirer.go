package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ad_generator_v1/internal/model"
)

// PersonaAcquirer 获取画像：先批量，失败后逐个兜底
// Acquire 从不返回错误，最差返回空切片
type PersonaAcquirer struct {
	personas PersonaGenerator
	log      *zap.Logger
	now      func() time.Time
}

func NewPersonaAcquirer(personas PersonaGenerator, log *zap.Logger) *PersonaAcquirer {
	return &PersonaAcquirer{personas: personas, log: log, now: time.Now}
}

// Acquire 获取 count 个画像
// ok=false 表示批量失败且逐个兜底也一个都没拿到
// 批量调用成功但返回 0 条记录视为获取成功，不走兜底
func (a *PersonaAcquirer) Acquire(ctx context.Context, count int, country, language string) ([]model.Persona, bool) {
	if count <= 0 {
		return nil, true
	}

	seed := fmt.Sprintf("%s-%s-%d", country, language, a.now().UnixNano())
	log := a.log.With(zap.String("request_id", RequestIDFrom(ctx)))

	batch, err := a.personas.GenerateMultiple(ctx, count, model.PersonaOptions{Weighted: true, Seed: seed})
	if err == nil && batch == nil {
		err = fmt.Errorf("%w: 批量响应为空", ErrUnrecognizedShape)
	}
	if err == nil {
		if len(batch.Personas) == 0 {
			log.Warn("批量获取画像成功但没有返回记录", zap.Int("count", count))
			return []model.Persona{}, true
		}
		if personas := withIDs(batch.Personas); len(personas) > 0 {
			return personas, true
		}
		err = fmt.Errorf("%w: 批量返回的画像都缺少 id", ErrUnrecognizedShape)
	}
	log.Warn("批量获取画像失败，改为逐个获取", zap.Int("count", count), zap.Error(err))

	personas := a.acquireOneByOne(ctx, count, seed, log)
	return personas, len(personas) > 0
}

// acquireOneByOne 逐个获取，单个失败直接跳过
func (a *PersonaAcquirer) acquireOneByOne(ctx context.Context, count int, seed string, log *zap.Logger) []model.Persona {
	personas := make([]model.Persona, 0, count)
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			log.Warn("逐个获取画像中断", zap.Int("acquired", len(personas)), zap.Error(ctx.Err()))
			break
		}

		p, err := a.personas.GenerateSingle(ctx, model.PersonaOptions{
			Weighted: true,
			Seed:     fmt.Sprintf("%s-%d", seed, i),
		})
		if err != nil {
			log.Warn("获取单个画像失败", zap.Int("index", i), zap.Error(err))
			continue
		}
		if p == nil || p.ID.IsZero() {
			log.Warn("单个画像缺少 id，已跳过", zap.Int("index", i))
			continue
		}
		personas = append(personas, *p)
	}

	log.Info("逐个获取画像完成", zap.Int("requested", count), zap.Int("acquired", len(personas)))
	return personas
}

// withIDs 过滤掉没有 id 的画像
func withIDs(in []model.Persona) []model.Persona {
	out := make([]model.Persona, 0, len(in))
	for _, p := range in {
		if !p.ID.IsZero() {
			out = append(out, p)
		}
	}
	return out
}
