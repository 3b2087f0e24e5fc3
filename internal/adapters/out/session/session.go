// Package session opens the store connections one fulfillment operation works with.
//
// Every Open dials the head office database, the reporting database and the document
// store afresh, so a caller recovering from a connectivity failure simply opens a new
// session:
//
//	factory := session.NewFactory(cfg)
//	s, err := factory.Open(ctx)
//	if err != nil {
//	    return err
//	}
//	defer s.Close(ctx)
//
//	result, err := syncDay.Handle(ctx, s, cmd)
package session

import (
	"context"
	"errors"

	mongostore "fulfillment/internal/adapters/out/mongo"
	"fulfillment/internal/adapters/out/mongo/driverrepo"
	"fulfillment/internal/adapters/out/mongo/orderrepo"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/headoffice"
	"fulfillment/internal/adapters/out/postgres/reporting"
	"fulfillment/internal/core/ports"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Config locates the three stores.
type Config struct {
	HeadOfficeDSN    string
	HeadOfficeSchema string
	ReportingDSN     string
	ReportingTable   string
	MongoURI         string
	MongoDatabase    string
	StoreID          string
}

var (
	_ ports.SessionFactory = (*Factory)(nil)
	_ ports.Session        = (*Session)(nil)
)

// Factory creates a Session per operation.
type Factory struct {
	cfg Config
}

func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

// Open connects to every store. If any connection fails the ones already made are
// released and the error, wrapping errs.ErrConnectivity, is returned.
func (f *Factory) Open(ctx context.Context) (ports.Session, error) {
	s := &Session{}

	var err error
	if s.headOfficeDB, err = postgres.Open(ctx, "head office", f.cfg.HeadOfficeDSN); err != nil {
		return nil, err
	}

	if s.reportingDB, err = postgres.Open(ctx, "reporting", f.cfg.ReportingDSN); err != nil {
		return nil, errors.Join(err, s.Close(ctx))
	}

	if s.client, err = mongostore.Connect(ctx, f.cfg.MongoURI); err != nil {
		return nil, errors.Join(err, s.Close(ctx))
	}

	if err = s.bind(f.cfg); err != nil {
		return nil, errors.Join(err, s.Close(ctx))
	}

	return s, nil
}

// Session holds live connections until Close.
type Session struct {
	headOfficeDB *gorm.DB
	reportingDB  *gorm.DB
	client       *mongo.Client

	headOffice *headoffice.GormHeadOfficeRepository
	reporting  *reporting.GormSummaryRepository
	orders     *orderrepo.Repository
	drivers    *driverrepo.Repository
}

func (s *Session) bind(cfg Config) error {
	db := s.client.Database(cfg.MongoDatabase)

	orders, err := orderrepo.NewRepository(db)
	if err != nil {
		return err
	}
	drivers, err := driverrepo.NewRepository(db)
	if err != nil {
		return err
	}

	s.headOffice = headoffice.NewGormHeadOfficeRepository(s.headOfficeDB, cfg.HeadOfficeSchema, cfg.StoreID)
	s.reporting = reporting.NewGormSummaryRepository(s.reportingDB, cfg.ReportingTable)
	s.orders = orders
	s.drivers = drivers
	return nil
}

func (s *Session) HeadOffice() ports.HeadOfficeRepository {
	return s.headOffice
}

// SummaryTargets writes the head office first, then reporting.
func (s *Session) SummaryTargets() []ports.SummaryWriter {
	return []ports.SummaryWriter{s.headOffice, s.reporting}
}

func (s *Session) Orders() ports.OrderRepository {
	return s.orders
}

func (s *Session) Drivers() ports.DriverRegistry {
	return s.drivers
}

// Close releases every connection that was opened, even if one of them fails to close.
func (s *Session) Close(ctx context.Context) error {
	err := errors.Join(
		postgres.Close(s.headOfficeDB),
		postgres.Close(s.reportingDB),
		mongostore.Disconnect(ctx, s.client),
	)

	s.headOfficeDB, s.reportingDB, s.client = nil, nil, nil
	return err
}
