package app

import (
	"time"

	"github.com/agentprompts/backend/internal/app/api/server"
	"github.com/agentprompts/backend/internal/app/service/analytics"
	"github.com/agentprompts/backend/internal/app/service/catalog"
	"github.com/agentprompts/backend/internal/app/service/eventlog"
	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/internal/app/service/webhookproc"
	"github.com/agentprompts/backend/internal/platform/db"
	"github.com/agentprompts/backend/internal/platform/provider"
	"github.com/agentprompts/backend/pkg/config"
	"github.com/agentprompts/backend/pkg/logger"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	provider.Module,
	catalog.Module,
	purchase.Module,
	eventlog.Module,
	webhookproc.Module,
	analytics.Module,
)
