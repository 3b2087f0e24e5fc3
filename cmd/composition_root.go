package cmd

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	mongostore "fulfillment/internal/adapters/out/mongo"
	"fulfillment/internal/adapters/out/pdf"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/headoffice"
	"fulfillment/internal/adapters/out/postgres/reporting"
	"fulfillment/internal/adapters/out/session"
	"fulfillment/internal/core/application/usecases"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"go.uber.org/zap"
)

type CompositionRoot struct {
	cfg      Config
	location *time.Location
	logger   *zap.Logger

	sessions  ports.SessionFactory
	renderer  ports.DocumentRenderer
	publisher ports.EventPublisher
	kafka     *kafka.Publisher
}

func NewCompositionRoot(cfg Config, logger *zap.Logger) (*CompositionRoot, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		cfg:      cfg,
		location: location,
		logger:   logger,
		sessions: session.NewFactory(session.Config{
			HeadOfficeDSN:    cfg.HeadOfficeDSN,
			HeadOfficeSchema: cfg.HeadOfficeSchema,
			ReportingDSN:     cfg.ReportingDSN,
			ReportingTable:   cfg.ReportingTable,
			MongoURI:         cfg.MongoURI,
			MongoDatabase:    cfg.MongoDatabase,
			StoreID:          cfg.StoreID,
		}),
		renderer:  pdf.NewDocketRenderer("Store " + cfg.StoreID),
		publisher: kafka.NoopPublisher{},
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaFulfillmentTopic, logger)
		if err != nil {
			return nil, err
		}
		root.kafka = publisher
		root.publisher = publisher
	} else {
		logger.Info("no kafka brokers configured, fulfillment events are dropped")
	}

	return root, nil
}

// Prepare creates the document store indexes and, with AUTO_MIGRATE, the relational
// tables. It runs once before the server starts.
func (c *CompositionRoot) Prepare(ctx context.Context) error {
	client, err := mongostore.Connect(ctx, c.cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() { _ = mongostore.Disconnect(ctx, client) }()

	if err = mongostore.EnsureIndexes(ctx, client.Database(c.cfg.MongoDatabase)); err != nil {
		return err
	}

	if !c.cfg.AutoMigrate {
		return nil
	}

	headOfficeDB, err := postgres.Open(ctx, "head office", c.cfg.HeadOfficeDSN)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(headOfficeDB) }()

	reportingDB, err := postgres.Open(ctx, "reporting", c.cfg.ReportingDSN)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(reportingDB) }()

	return errors.Join(
		headoffice.Migrate(ctx, headOfficeDB, c.cfg.HeadOfficeSchema),
		reporting.Migrate(ctx, reportingDB, c.cfg.ReportingTable),
	)
}

func (c *CompositionRoot) CreateSessionRunner() usecases.SessionRunner {
	return usecases.NewSessionRunner(c.sessions, c.cfg.RequestAttempts, c.logger)
}

func (c *CompositionRoot) CreateSyncDayCommandHandler() commands.SyncDayCommandHandler {
	return commands.NewSyncDayCommandHandler(c.cfg.StoreID, c.renderer, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateEndOfDayCommandHandler() commands.EndOfDayCommandHandler {
	return commands.NewEndOfDayCommandHandler(c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	clock := func() time.Time { return time.Now().In(c.location) }
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // placeholder prices only
	return commands.NewCreateOrderCommandHandler(c.cfg.StoreID, c.renderer, c.publisher, clock, rng, c.logger)
}

func (c *CompositionRoot) CreateCloseDayCommandHandler() commands.CloseDayCommandHandler {
	return commands.NewCloseDayCommandHandler(c.CreateSyncDayCommandHandler(), c.CreateEndOfDayCommandHandler())
}

func (c *CompositionRoot) CreateGetDailyOrdersQueryHandler() queries.GetDailyOrdersQueryHandler {
	return queries.NewGetDailyOrdersQueryHandler(c.cfg.StoreID)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateSessionRunner(),
		c.CreateSyncDayCommandHandler(),
		c.CreateEndOfDayCommandHandler(),
		c.CreateCreateOrderCommandHandler(),
		c.CreateGetDailyOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	closeDay := jobs.NewCloseDayJob(
		c.CreateCloseDayCommandHandler(),
		c.CreateSessionRunner(),
		c.cfg.CloseDaySchedule,
		c.location,
		c.logger,
	)
	return jobs.NewJobManager(closeDay)
}

// Close releases the long-lived clients. Sessions close themselves per operation.
func (c *CompositionRoot) Close() {
	if c.kafka != nil {
		c.kafka.Close()
	}
}
