package logger

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	msgSpanStage    = "span stage finished"
	msgSpanFinished = "span finished"
)

// Span измеряет длительность операции и ее этапов.
// Span не потокобезопасен: он принадлежит одному вызову и передается явно.
type Span struct {
	log     *Logger
	name    string
	now     func() time.Time
	started time.Time
	stage   string
	stageAt time.Time
	stages  []zap.Field
}

// StartSpan начинает измерение операции name.
func StartSpan(ctx context.Context, name string) *Span {
	return startSpan(Log(ctx), name, time.Now)
}

func startSpan(log *Logger, name string, now func() time.Time) *Span {
	t := now()
	return &Span{
		log:     log.With(zap.String("span", name)),
		name:    name,
		now:     now,
		started: t,
		stageAt: t,
	}
}

// Stage закрывает текущий этап и открывает новый.
func (s *Span) Stage(ctx context.Context, stage string) {
	s.closeStage(ctx)
	s.stage = stage
	s.stageAt = s.now()
}

// Current возвращает имя текущего этапа.
func (s *Span) Current() string {
	return s.stage
}

// End завершает операцию и возвращает ее длительность.
func (s *Span) End(ctx context.Context, err error) time.Duration {
	s.closeStage(ctx)
	elapsed := s.now().Sub(s.started)

	fields := append([]zap.Field{zap.Duration("elapsed", elapsed)}, s.stages...)
	if err != nil {
		fields = append(fields, zap.String("failed_stage", s.stage), zap.Error(err))
	}
	s.log.Debug(ctx, msgSpanFinished, fields...)
	return elapsed
}

func (s *Span) closeStage(ctx context.Context) {
	if s.stage == "" {
		return
	}
	d := s.now().Sub(s.stageAt)
	s.stages = append(s.stages, zap.Duration("stage_"+s.stage, d))
	s.log.Debug(ctx, msgSpanStage, zap.String("stage", s.stage), zap.Duration("elapsed", d))
}
