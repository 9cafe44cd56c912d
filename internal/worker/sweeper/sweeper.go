package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Syncer полная пересборка кэша занятости
type Syncer interface {
	SyncAll(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически пересобирает кэш занятости всех парковок
type Sweeper struct {
	scheduler gocron.Scheduler
	syncer    Syncer
	interval  time.Duration
	timeout   time.Duration
	logger    Logger
}

// New создаёт планировщик. Задача регистрируется в Start
func New(syncer Syncer, interval, timeout time.Duration, logger Logger) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("sweeper: failed to create scheduler: %w", err)
	}
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	return &Sweeper{
		scheduler: scheduler,
		syncer:    syncer,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// Start регистрирует задачу и запускает планировщик
func (s *Sweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.Sweep),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("sweeper: failed to register job: %w", err)
	}

	s.scheduler.Start()
	s.logger.Info("Sweeper: started, interval=%s", s.interval)
	return nil
}

// Sweep один проход синхронизации
func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.syncer.SyncAll(ctx); err != nil {
		s.logger.Warn("Sweeper: sync finished with errors: %v", err)
	}
}

// Stop останавливает планировщик и дожидается текущего прохода
func (s *Sweeper) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("sweeper: failed to shutdown scheduler: %w", err)
	}
	s.logger.Info("Sweeper: stopped")
	return nil
}
