package cmd

import (
	"orders/internal/adapters/in/http"
	"orders/internal/adapters/out/eventlog"
	"orders/internal/adapters/out/memory/orderrepo"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/jobs"
	"orders/internal/pkg/auth"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"
)

// CompositionRoot wires the adapters to the use cases. Handlers are cheap
// value types created on demand; the repository and notifier are the shared
// singletons.
type CompositionRoot struct {
	config   Config
	repo     *orderrepo.Repository
	notifier *eventlog.Notifier
	logger   *zap.Logger
}

// NewCompositionRoot builds the shared adapters from the configuration.
func NewCompositionRoot(config Config, logger *zap.Logger) *CompositionRoot {
	return &CompositionRoot{
		config:   config,
		repo:     orderrepo.NewRepository(),
		notifier: eventlog.NewNotifier(logger.With(zap.String("component", "event_notifier")), config.EventBufferSize),
		logger:   logger,
	}
}

// Close releases the shared adapters. Flushes buffered events.
func (c *CompositionRoot) Close() {
	c.notifier.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.repo, c.notifier)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.repo, c.notifier)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.repo)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.repo)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.repo)
}

func (c *CompositionRoot) CreateTokenValidator() *auth.TokenValidator {
	return auth.NewTokenValidator(c.config.JWTSecret)
}

// CreateHTTPServer builds the API server around the loaded contract.
func (c *CompositionRoot) CreateHTTPServer(openapiDoc *openapi3.T) *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		openapiDoc,
		c.logger.With(zap.String("component", "http_server")),
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetOrderStatsQueryHandler(),
		c.config.StatsJobSpec,
		c.logger,
	)
}
