package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"ad_generator_v1/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// resty 的空闲连接和 sqlite 连接池在测试结束后由运行时回收
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

// ==================== 画像服务 ====================

type fakePersonas struct {
	mu sync.Mutex

	batch    *model.PersonaBatch
	batchErr error

	// singles[i] 为第 i 次 GenerateSingle 的返回，nil 表示返回 singleErr
	singles   []*model.Persona
	singleErr error
	infoErr   error

	batchCounts []int
	seeds       []string
	singleCalls int
}

var _ PersonaGenerator = (*fakePersonas)(nil)

func (f *fakePersonas) GenerateMultiple(_ context.Context, count int, opts model.PersonaOptions) (*model.PersonaBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCounts = append(f.batchCounts, count)
	f.seeds = append(f.seeds, opts.Seed)
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.batch, nil
}

func (f *fakePersonas) GenerateSingle(_ context.Context, opts model.PersonaOptions) (*model.Persona, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.singleCalls
	f.singleCalls++
	f.seeds = append(f.seeds, opts.Seed)
	if i < len(f.singles) && f.singles[i] != nil {
		p := *f.singles[i]
		return &p, nil
	}
	if f.singleErr != nil {
		return nil, f.singleErr
	}
	return nil, errors.New("no persona")
}

func (f *fakePersonas) GetInfo(ctx context.Context) (json.RawMessage, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return json.RawMessage(`{"name":"persona-generator"}`), nil
}

// ==================== 图片服务 ====================

type fakeImages struct {
	generate  func(ctx context.Context, prompt string, opts model.ImageOptions) (json.RawMessage, error)
	healthErr error

	mu          sync.Mutex
	opts        []model.ImageOptions
	healthCalls int
}

var _ ImageGenerator = (*fakeImages)(nil)

func (f *fakeImages) GenerateImage(ctx context.Context, prompt string, opts model.ImageOptions) (json.RawMessage, error) {
	f.mu.Lock()
	f.opts = append(f.opts, opts)
	f.mu.Unlock()
	if f.generate != nil {
		return f.generate(ctx, prompt, opts)
	}
	return json.RawMessage(`{"success":true,"images":[{"url":"https://img.example.com/a.png","provider":"test"}]}`), nil
}

func (f *fakeImages) HealthCheck(context.Context) error {
	f.mu.Lock()
	f.healthCalls++
	f.mu.Unlock()
	return f.healthErr
}

// ==================== 文案服务 ====================

type fakeTexts struct {
	generate  func(ctx context.Context, req model.TextRequest) (json.RawMessage, error)
	healthy   bool
	healthErr error

	mu   sync.Mutex
	reqs []model.TextRequest
}

var _ TextGenerator = (*fakeTexts)(nil)

func (f *fakeTexts) Generate(ctx context.Context, req model.TextRequest) (json.RawMessage, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.generate != nil {
		return f.generate(ctx, req)
	}
	return json.RawMessage(defaultTextResponse), nil
}

func (f *fakeTexts) Health(context.Context) (bool, error) {
	return f.healthy, f.healthErr
}

const defaultTextResponse = `{"success":true,"data":{"variants":[
	{"variant":"urgency","adTitle":"Act now","adText":"Only today: get fit in 10 minutes a day!","qualityScore":7,"hasCallToAction":true},
	{"variant":"benefit","adTitle":"Feel better","adText":"Sleep better and feel stronger every week.","qualityScore":9},
	{"variant":"ease","adTitle":"So easy","adText":"One tap to start.","qualityScore":6}
]}}`

// ==================== 调用日志 ====================

type recordingRecorder struct {
	mu      sync.Mutex
	entries []model.UpstreamCallLog
}

func (r *recordingRecorder) Record(_ context.Context, entry *model.UpstreamCallLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
}

func (r *recordingRecorder) all() []model.UpstreamCallLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.UpstreamCallLog(nil), r.entries...)
}

// ==================== 测试数据 ====================

func testPersona(id, profession string) model.Persona {
	return model.Persona{
		ID: model.NewPersonaID(id),
		Persona: model.PersonaData{
			Gender:             "female",
			AgeRange:           "25-34",
			Location:           "Austin",
			Profession:         profession,
			IncomeLevel:        "middle",
			Lifestyle:          "active",
			Values:             "health",
			PrimaryInterest:    "fitness",
			CommunicationStyle: "direct",
			TechnologyComfort:  "high",
		},
		RequestID: "persona-req-1",
	}
}

func batchOf(personas ...model.Persona) *model.PersonaBatch {
	return &model.PersonaBatch{Personas: personas, TotalCount: len(personas)}
}
