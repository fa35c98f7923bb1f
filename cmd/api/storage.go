package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/agrochain-api/internal/application/admin"
	"github.com/jhoicas/agrochain-api/internal/application/supply"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/memory"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/postgres"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/redisbus"
	"github.com/jhoicas/agrochain-api/pkg/config"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// storage repositorios del backend elegido (STORAGE=postgres|memory).
type storage struct {
	users            repository.UserRepository
	roleSequences    repository.RoleSequenceRepository
	items            repository.InventoryItemRepository
	orders           repository.OrderRepository
	dealerRequests   repository.DealerRequestRepository
	transactions     repository.TransactionRepository
	dealerStock      repository.DealerStockRepository
	retailerRequests repository.RetailerRequestRepository
	messages         repository.AdminMessageRepository
	reports          repository.ReportRepository
	txRunner         supply.TxRunner
	close            func()
}

// backends almacenamiento más los destinos opcionales de logs (MongoDB) y mensajes (Redis).
type backends struct {
	store     *storage
	logRepo   repository.SystemLogRepository
	publisher admin.MessagePublisher
	closers   []func()
}

// close libera los recursos en orden inverso de apertura.
func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

var openStorageFn = openStorage

// openBackends abre todo lo que la API necesita. Si algo falla, cierra lo ya abierto.
func openBackends(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backends, error) {
	store, err := openStorageFn(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("almacenamiento: %w", err)
	}
	b := &backends{
		store:     store,
		logRepo:   memory.NewLogRing(memory.DefaultLogRingSize),
		publisher: admin.NopPublisher{},
		closers:   []func(){store.close},
	}

	if cfg.Mongo.Enabled() {
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Disconnect(context.Background()) })
		mongoLogs := mongodb.NewSystemLogRepository(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.LogsCollection))
		if err := mongoLogs.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("índices de logs")
		}
		b.logRepo = mongoLogs
	}

	if cfg.Redis.Enabled() {
		client, err := redisbus.NewClient(ctx, cfg.Redis)
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.publisher = redisbus.NewPublisher(client, cfg.Redis.MessagesChannel)
	}
	return b, nil
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("STORAGE=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			users:            store.Users(),
			roleSequences:    store.RoleSequences(),
			items:            store.InventoryItems(),
			orders:           store.Orders(),
			dealerRequests:   store.DealerRequests(),
			transactions:     store.Transactions(),
			dealerStock:      store.DealerStock(),
			retailerRequests: store.RetailerRequests(),
			messages:         store.AdminMessages(),
			reports:          store.Reports(),
			txRunner:         memory.NewTxRunner(store),
			close:            func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		users:            postgres.NewUserRepository(pool),
		roleSequences:    postgres.NewRoleSequenceRepository(pool),
		items:            postgres.NewInventoryItemRepository(pool),
		orders:           postgres.NewOrderRepository(pool),
		dealerRequests:   postgres.NewDealerRequestRepository(pool),
		transactions:     postgres.NewTransactionRepository(pool),
		dealerStock:      postgres.NewDealerStockRepository(pool),
		retailerRequests: postgres.NewRetailerRequestRepository(pool),
		messages:         postgres.NewAdminMessageRepository(pool),
		reports:          postgres.NewReportRepository(pool),
		txRunner:         postgres.NewTxRunner(pool),
		close:            pool.Close,
	}, nil
}
