package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdsymphony/hist2json/pkg/logger"
	"github.com/sdsymphony/hist2json/pkg/testutil"
)

func TestWithContext_AddsRunIDAndFile(t *testing.T) {
	testutil.TestLogger(t) // exercised here for its side effect: it must build without error

	ctx := context.WithValue(context.Background(), logger.RunIDKey, "run-42")
	ctx = context.WithValue(ctx, logger.FileKey, "2023-10.hist")

	log := logger.WithContext(ctx)
	assert.NotNil(t, log)
	assert.NotSame(t, logger.Get(), log)
}

func TestWithContext_NoValuesIsFine(t *testing.T) {
	log := logger.WithContext(context.Background())
	assert.NotNil(t, log)
}
