package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/loanledger/internal/app"
	"github.com/polkiloo/loanledger/internal/config"
	"github.com/polkiloo/loanledger/internal/logger"
	"github.com/polkiloo/loanledger/internal/pkg/lock"
	"github.com/polkiloo/loanledger/internal/server/http/router"
	"github.com/polkiloo/loanledger/internal/storage/postgres"
	"github.com/polkiloo/loanledger/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		lock.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
