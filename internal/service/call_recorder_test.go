package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ad_generator_v1/internal/model"
	"ad_generator_v1/internal/repository"
	"ad_generator_v1/pkg/database"
)

func TestRepoCallRecorder_Record(t *testing.T) {
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, DSN: ":memory:"}, &model.UpstreamCallLog{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	repo := repository.NewCallLogRepository(db)
	rec := NewRepoCallRecorder(repo, zap.NewNop())

	// 已取消的请求也要落库
	ctx, cancel := context.WithCancel(WithRequestID(context.Background(), "ad-9-xyz"))
	cancel()

	recordCall(ctx, rec, model.CallServiceText, "generate", time.Now().Add(-15*time.Millisecond), 3, nil)
	recordCall(ctx, rec, model.CallServiceImage, "generate_image", time.Now(), 0, errors.New(strings.Repeat("e", 2000)))

	logs, err := repo.ListByRequest(context.Background(), "ad-9-xyz")
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, model.CallServiceText, logs[0].Service)
	assert.Equal(t, model.CallStatusSuccess, logs[0].Status)
	assert.Equal(t, 3, logs[0].ItemCount)
	assert.GreaterOrEqual(t, logs[0].DurationMs, int64(15))

	assert.Equal(t, model.CallStatusFailed, logs[1].Status)
	assert.Len(t, logs[1].ErrorMsg, 1024)
}

func TestRecordCall_NilRecorder(t *testing.T) {
	assert.NotPanics(t, func() {
		recordCall(context.Background(), nil, model.CallServiceText, "generate", time.Now(), 0, nil)
	})
	NopCallRecorder{}.Record(context.Background(), &model.UpstreamCallLog{})
}
