package di

import (
	"atomcms/application/commands/bus"
	"atomcms/application/ports"
	querybus "atomcms/application/queries/bus"
	"atomcms/infrastructure/config"
	"atomcms/pkg/auth"
	"atomcms/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	AtomRepo       ports.AtomRepository
	TypeRepo       ports.AtomTypeRepository
	ArticleRepo    ports.ArticleRepository
	CollectionRepo ports.CollectionRepository
	MenuRepo       ports.MenuRepository
	VariableRepo   ports.VariableRepository
	APIKeys        ports.APIKeyStore
	EventPublisher ports.EventPublisher
	RenderCache    ports.RenderCache
	CommandBus     *bus.CommandBus
	QueryBus       *querybus.QueryBus
	Metrics        *observability.Metrics
	JWTValidator   *auth.JWTValidator
}
