package di

import (
	"context"
	"fmt"

	"atomcms/application/commands"
	"atomcms/application/commands/bus"
	commands_handlers "atomcms/application/commands/handlers"
	"atomcms/application/ports"
	"atomcms/application/queries"
	querybus "atomcms/application/queries/bus"
	queries_handlers "atomcms/application/queries/handlers"
	"atomcms/application/services"
	"atomcms/infrastructure/cache"
	"atomcms/infrastructure/config"
	"atomcms/infrastructure/messaging/eventbridge"
	"atomcms/infrastructure/persistence/dynamodb"
	"atomcms/pkg/auth"
	"atomcms/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideAtomRepository creates an atom repository
func ProvideAtomRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.AtomRepository {
	return dynamodb.NewAtomRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideAtomTypeRepository creates an atom type repository
func ProvideAtomTypeRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.AtomTypeRepository {
	return dynamodb.NewAtomTypeRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideArticleRepository creates an article repository
func ProvideArticleRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ArticleRepository {
	return dynamodb.NewArticleRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideCollectionRepository creates a collection repository
func ProvideCollectionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CollectionRepository {
	return dynamodb.NewCollectionRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideMenuRepository creates a menu repository
func ProvideMenuRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.MenuRepository {
	return dynamodb.NewMenuRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideVariableRepository creates a stored variable repository
func ProvideVariableRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.VariableRepository {
	return dynamodb.NewVariableRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideAPIKeyStore creates an API key store
func ProvideAPIKeyStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.APIKeyStore {
	return dynamodb.NewAPIKeyStore(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates an event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewEventBridgePublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("AtomCMS/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideRenderCache creates the render cache
func ProvideRenderCache(cfg *config.Config, logger *zap.Logger) (ports.RenderCache, error) {
	return cache.NewLRURenderCache(cfg.RenderCacheSize, logger)
}

// ProvideJWTValidator creates the admin token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideTemplateRenderer creates the atom template renderer
func ProvideTemplateRenderer() *services.TemplateRenderer {
	return services.NewTemplateRenderer()
}

// ProvideComposer creates the article composer
func ProvideComposer(
	atoms ports.AtomRepository,
	types ports.AtomTypeRepository,
	renderer *services.TemplateRenderer,
	logger *zap.Logger,
) *services.Composer {
	return services.NewComposer(atoms, types, renderer, logger)
}

// ProvideVariableResolver creates the variable resolver
func ProvideVariableResolver(variables ports.VariableRepository, logger *zap.Logger) *services.VariableResolver {
	return services.NewVariableResolver(variables, logger)
}

// ProvideAssembler creates the collection assembler
func ProvideAssembler(
	collections ports.CollectionRepository,
	menus ports.MenuRepository,
	articles ports.ArticleRepository,
	logger *zap.Logger,
) *services.Assembler {
	return services.NewAssembler(collections, menus, articles, logger)
}

// ProvideRenderService creates the render pipeline
func ProvideRenderService(
	assembler *services.Assembler,
	composer *services.Composer,
	resolver *services.VariableResolver,
	renderCache ports.RenderCache,
	logger *zap.Logger,
) *services.RenderService {
	return services.NewRenderService(assembler, composer, resolver, renderCache, logger)
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	atoms ports.AtomRepository,
	types ports.AtomTypeRepository,
	articles ports.ArticleRepository,
	collections ports.CollectionRepository,
	menus ports.MenuRepository,
	variables ports.VariableRepository,
	renderCache ports.RenderCache,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(&zapLoggerAdapter{logger}),
	)

	// Register CreateAtomCommand handler
	createAtomHandler := commands_handlers.NewCreateAtomHandler(atoms, types, publisher, logger)
	commandBus.Register(commands.CreateAtomCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateAtomCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createAtomHandler.Handle(ctx, createCmd)
			return err
		},
	})

	// Register UpdateAtomCommand handler
	updateAtomHandler := commands_handlers.NewUpdateAtomHandler(atoms, publisher, logger)
	commandBus.Register(commands.UpdateAtomCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			updateCmd, ok := cmd.(commands.UpdateAtomCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := updateAtomHandler.Handle(ctx, updateCmd)
			return err
		},
	})

	// Register DeleteAtomCommand handler
	deleteAtomHandler := commands_handlers.NewDeleteAtomHandler(atoms, publisher, logger)
	commandBus.Register(commands.DeleteAtomCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteAtomCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteAtomHandler.Handle(ctx, deleteCmd)
		},
	})

	// Register CreateAtomTypeCommand handler
	createTypeHandler := commands_handlers.NewCreateAtomTypeHandler(types, logger)
	commandBus.Register(commands.CreateAtomTypeCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			typeCmd, ok := cmd.(commands.CreateAtomTypeCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createTypeHandler.Handle(ctx, typeCmd)
			return err
		},
	})

	// Register CreateArticleCommand handler
	createArticleHandler := commands_handlers.NewCreateArticleHandler(articles, atoms, publisher, logger)
	commandBus.Register(commands.CreateArticleCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateArticleCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createArticleHandler.Handle(ctx, createCmd)
			return err
		},
	})

	// Register AttachAtomCommand handler
	attachAtomHandler := commands_handlers.NewAttachAtomHandler(articles, atoms, publisher, logger)
	commandBus.Register(commands.AttachAtomCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			attachCmd, ok := cmd.(commands.AttachAtomCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return attachAtomHandler.Handle(ctx, attachCmd)
		},
	})

	// Register DetachAtomCommand handler
	detachAtomHandler := commands_handlers.NewDetachAtomHandler(articles, publisher, logger)
	commandBus.Register(commands.DetachAtomCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			detachCmd, ok := cmd.(commands.DetachAtomCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return detachAtomHandler.Handle(ctx, detachCmd)
		},
	})

	// Register CreateCollectionCommand handler
	createCollectionHandler := commands_handlers.NewCreateCollectionHandler(collections, menus, publisher, logger)
	commandBus.Register(commands.CreateCollectionCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateCollectionCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createCollectionHandler.Handle(ctx, createCmd)
			return err
		},
	})

	// Register AddToCollectionCommand handler
	addToCollectionHandler := commands_handlers.NewAddToCollectionHandler(collections, articles, publisher, logger)
	commandBus.Register(commands.AddToCollectionCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			addCmd, ok := cmd.(commands.AddToCollectionCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return addToCollectionHandler.Handle(ctx, addCmd)
		},
	})

	// Register RemoveFromCollectionCommand handler
	removeFromCollectionHandler := commands_handlers.NewRemoveFromCollectionHandler(collections, publisher, logger)
	commandBus.Register(commands.RemoveFromCollectionCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			removeCmd, ok := cmd.(commands.RemoveFromCollectionCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return removeFromCollectionHandler.Handle(ctx, removeCmd)
		},
	})

	// Register SaveMenuCommand handler
	saveMenuHandler := commands_handlers.NewSaveMenuHandler(collections, menus, articles, publisher, logger)
	commandBus.Register(commands.SaveMenuCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			saveCmd, ok := cmd.(commands.SaveMenuCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return saveMenuHandler.Handle(ctx, saveCmd)
		},
	})

	// Register SetVariableCommand handler
	setVariableHandler := commands_handlers.NewSetVariableHandler(variables, renderCache, publisher, logger)
	commandBus.Register(commands.SetVariableCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			setCmd, ok := cmd.(commands.SetVariableCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return setVariableHandler.Handle(ctx, setCmd)
		},
	})

	// Register DeleteVariableCommand handler
	deleteVariableHandler := commands_handlers.NewDeleteVariableHandler(variables, renderCache, logger)
	commandBus.Register(commands.DeleteVariableCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteVariableCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteVariableHandler.Handle(ctx, deleteCmd)
		},
	})

	return commandBus
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	renderer *services.RenderService,
	assembler *services.Assembler,
	composer *services.Composer,
	resolver *services.VariableResolver,
	collections ports.CollectionRepository,
	menus ports.MenuRepository,
	articles ports.ArticleRepository,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	var metricsMW *querybus.MetricsMiddleware
	if cfg.EnableMetrics {
		metricsMW = querybus.NewMetricsMiddleware(&metricsAdapter{metrics})
	}
	register := func(query querybus.Query, handler querybus.QueryHandler) {
		if metricsMW != nil {
			handler = metricsMW.Wrap(handler)
		}
		queryBus.Register(query, handler)
	}

	// Register RenderArticleQuery handler
	renderHandler := queries_handlers.NewRenderArticleHandler(renderer, logger)
	register(queries.RenderArticleQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			renderQuery, ok := query.(queries.RenderArticleQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return renderHandler.Handle(ctx, renderQuery)
		},
	})

	// Register GetCollectionQuery handler
	getCollectionHandler := queries_handlers.NewGetCollectionHandler(collections, menus, articles, logger)
	register(queries.GetCollectionQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetCollectionQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getCollectionHandler.Handle(ctx, getQuery)
		},
	})

	// Register GetMenuQuery handler
	getMenuHandler := queries_handlers.NewGetMenuHandler(assembler, logger)
	register(queries.GetMenuQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			menuQuery, ok := query.(queries.GetMenuQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getMenuHandler.Handle(ctx, menuQuery)
		},
	})

	// Register ListArticlesQuery handler
	listArticlesHandler := queries_handlers.NewListArticlesHandler(articles, logger)
	register(queries.ListArticlesQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListArticlesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listArticlesHandler.Handle(ctx, listQuery)
		},
	})

	// Register GetArticleDocumentQuery handler
	getDocumentHandler := queries_handlers.NewGetArticleDocumentHandler(articles, composer, resolver, logger)
	register(queries.GetArticleDocumentQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			docQuery, ok := query.(queries.GetArticleDocumentQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getDocumentHandler.Handle(ctx, docQuery)
		},
	})

	return queryBus
}

// metricsAdapter adapts observability.Metrics to the query bus Metrics interface
type metricsAdapter struct {
	metrics *observability.Metrics
}

func (a *metricsAdapter) StartTimer(metric, label string) querybus.Timer {
	return a.metrics.StartTimer(metric, label)
}

func (a *metricsAdapter) Increment(metric, label string) {
	a.metrics.Increment(metric, label)
}

// zapLoggerAdapter adapts zap.Logger to the bus Logger interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Debug(msg string, fields ...interface{}) {
	a.logger.Debug(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, _ := fields[i].(string)
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}
	}
	return zapFields
}
