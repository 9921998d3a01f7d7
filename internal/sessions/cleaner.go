package sessions

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type expiredDeleter interface {
	DeleteExpired(ctx context.Context) error
}

// Cleaner periodically drops index entries of expired refresh sessions.
type Cleaner struct {
	cron    *cron.Cron
	logger  *zap.SugaredLogger
	tokens  expiredDeleter
	period  time.Duration
	timeout time.Duration
}

func NewCleaner(logger *zap.SugaredLogger, tokens expiredDeleter, period time.Duration) *Cleaner {
	c := cron.New(
		cron.WithLogger(cronLogger{logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
	)

	return &Cleaner{
		cron:    c,
		logger:  logger,
		tokens:  tokens,
		period:  period,
		timeout: period,
	}
}

func (c *Cleaner) Start() {
	c.cron.Schedule(cron.Every(c.period), cron.FuncJob(c.cleanup))
	c.cron.Start()
	c.logger.Infow("session cleaner started", "period", c.period)
}

// Stop waits for a running cleanup to finish.
func (c *Cleaner) Stop() {
	<-c.cron.Stop().Done()
	c.logger.Info("session cleaner stopped")
}

func (c *Cleaner) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.tokens.DeleteExpired(ctx); err != nil {
		c.logger.Errorw("failed to delete expired sessions", "err", err)
		return
	}
	c.logger.Debug("expired sessions deleted")
}

type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "err", err)...)
}
