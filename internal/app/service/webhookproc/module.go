package webhookproc

import (
	"github.com/agentprompts/backend/internal/app/service/eventlog"
	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/internal/platform/provider"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(func(c *provider.Client, purchases *purchase.Service, events *eventlog.Service, log *zap.SugaredLogger) *Processor {
		return New(c, purchases, events, log)
	}),
)
