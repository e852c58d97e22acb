package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/xuanmo666/order-management-system/configs"
	"github.com/xuanmo666/order-management-system/internal/adapter/cache"
	httpadapter "github.com/xuanmo666/order-management-system/internal/adapter/http"
	"github.com/xuanmo666/order-management-system/internal/adapter/http/middleware"
	"github.com/xuanmo666/order-management-system/internal/adapter/memstore"
	"github.com/xuanmo666/order-management-system/internal/adapter/queue"
	"github.com/xuanmo666/order-management-system/internal/adapter/repo"
	"github.com/xuanmo666/order-management-system/internal/keylock"
	"github.com/xuanmo666/order-management-system/internal/logging"
	"github.com/xuanmo666/order-management-system/internal/seed"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	log := logging.New("app")

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Persistence: MySQL when configured, in-memory otherwise. Both sides
	// satisfy the same ports; nothing downstream can tell them apart.
	var (
		products    usecase.ProductRepo
		inventories usecase.InventoryRepo
		orders      usecase.OrderRepo
		customers   usecase.CustomerRepo
	)
	if cfg.MySQL.DSN != "" {
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err != nil {
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = db.Close() })

		products = repo.NewMySQLProductRepo(db)
		inventories = repo.NewMySQLInventoryRepo(db)
		orders = repo.NewMySQLOrderRepo(db)
		customers = repo.NewMySQLCustomerRepo(db)
		log.Info("using mysql persistence")
	} else {
		products = memstore.NewProductStore()
		inventories = memstore.NewInventoryStore()
		orders = memstore.NewOrderStore()
		customers = memstore.NewCustomerStore()
		log.Info("using in-memory persistence")
	}

	// Idempotency: Redis when configured, in-process fallback otherwise.
	var idem usecase.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = rdb.Close() })
		idem = cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	} else {
		idem = cache.NewMemoryIdempotencyStore(cfg.Idempotency.TTL)
	}

	// Events: RabbitMQ when configured, dropped otherwise.
	var events usecase.EventPublisher = usecase.NopPublisher{}
	if cfg.Rabbit.URL != "" {
		conn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = conn.Close() })

		pub, err := queue.NewRabbitPublisher(ch, cfg.Rabbit.Exchange)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		events = pub
	}

	// Services, wired once and passed explicitly; no hidden singletons.
	locks := keylock.NewRegistry()
	catalog := usecase.NewProductCatalog(products, inventories, locks)
	ledger := usecase.NewInventoryLedger(inventories, products, locks, events)
	registry := usecase.NewCustomerRegistry(customers)
	processor := usecase.NewOrderProcessor(orders, products, inventories, customers, locks, events)

	if cfg.App.SeedDemoData {
		if err := seed.Run(context.Background(), catalog, ledger, registry); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	ph := httpadapter.NewProductHandler(catalog, ledger)
	ih := httpadapter.NewInventoryHandler(ledger)
	oh := httpadapter.NewOrderHandler(processor, registry, idem)
	ch := httpadapter.NewCustomerHandler(registry)
	th := httpadapter.NewTokenHandler(cfg)
	authz := middleware.NewAuthz(cfg)
	router := httpadapter.NewRouter(ph, ih, oh, ch, th, authz)

	return &App{Router: router}, cleanup, nil
}
