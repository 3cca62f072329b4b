package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/alexanderramin/todod/internal/domain"
	"github.com/stretchr/testify/assert"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogUseCaseObserver_Levels(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		level string
		extra string
	}{
		{"success", nil, "level=DEBUG", "success=true"},
		{"not found", fmt.Errorf("wrapped: %w", domain.ErrTodoNotFound), "level=INFO", "outcome=not_found"},
		{"failure", errors.New("disk gone"), "level=ERROR", `error="disk gone"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			obs := NewLogUseCaseObserver(newBufferLogger(&buf))
			obs.ObserveUseCase(context.Background(), UseCaseEvent{
				Name:    "get-todo",
				Success: tc.err == nil,
				Err:     tc.err,
				Fields:  map[string]any{"todo_id": int64(3)},
			})
			out := buf.String()
			assert.Contains(t, out, tc.level)
			assert.Contains(t, out, tc.extra)
			assert.Contains(t, out, "use_case=get-todo")
			assert.Contains(t, out, "todo_id=3")
		})
	}
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
