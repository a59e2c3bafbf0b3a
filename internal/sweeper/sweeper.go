package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/telecom_cart/internal/ports"
)

// Проверка, что Sweeper удовлетворяет интерфейсу Worker.
var _ ports.Worker = (*Sweeper)(nil)

// contextSweeper — то, что умеет удалять истёкшие контексты (оркестратор корзины).
type contextSweeper interface {
	SweepExpiredContexts(ctx context.Context) (int, error)
}

// Sweeper — периодическая очистка истёкших контекстов провайдера.
type Sweeper struct {
	target   contextSweeper
	log      ports.Logger
	interval time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// New — конструктор. interval <= 0 заменяется на минуту.
func New(target contextSweeper, interval time.Duration, log ports.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		target:   target,
		log:      log,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Run — тикер до отмены ctx или Close. Ошибка очистки логируется, цикл продолжается.
func (s *Sweeper) Run(ctx context.Context) error {
	s.log.Infof(ctx, "context sweeper started interval=%s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

// Close — останавливает Run; повторный вызов безопасен.
func (s *Sweeper) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	removed, err := s.target.SweepExpiredContexts(ctx)
	if err != nil {
		s.log.Warnf(ctx, "sweep expired contexts failed: %v", err)
		return
	}
	if removed > 0 {
		s.log.Debugf(ctx, "swept expired contexts count=%d", removed)
	}
}
