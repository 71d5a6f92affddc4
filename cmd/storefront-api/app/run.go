package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/misbahulhassan/Aeroflux-Electric/configs"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/cache"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/http"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/http/middleware"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/kafka"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/queue"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/repo"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/logging"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		return nil, nil, err
	}
	cancel()

	if err := repo.RunMigrations(db, cfg.MySQL.MigrationsPath); err != nil {
		return nil, nil, err
	}

	logger.Info("storefront-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// infra
	productRepo := repo.NewMySQLProductRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	userRepo := repo.NewMySQLUserRepo(db)
	adminRepo := repo.NewMySQLAdminRepo(db)
	contactRepo := repo.NewMySQLContactRepo(db)

	carts := cache.NewRedisCartStore(rdb, cfg.Cart.TTL)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statuses := cache.NewRedisStatusCache(rdb, cfg.StatusCache.TTL)

	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	// register queue-handler
	setupQueue(ch)

	// register kafka-listener
	setupKafkaListener(cfg, orderRepo, statuses)

	// usecases
	catalog := usecase.NewCatalog(productRepo)
	cartSvc := usecase.NewCartService(carts, productRepo)
	placeOrder := usecase.NewPlaceOrder(carts, orderRepo, idem, producer)

	// handlers + router + middleware
	h := http.Handlers{
		Auth:    http.NewAuthHandler(cfg, userRepo),
		Product: http.NewProductHandler(catalog),
		Cart:    http.NewCartHandler(cartSvc),
		Order:   http.NewOrderHandler(placeOrder, orderRepo, statuses),
		Admin:   http.NewAdminHandler(orderRepo, productRepo, contactRepo, statuses),
		Contact: http.NewContactHandler(contactRepo),
	}
	authz := middleware.NewAuthz(cfg)
	router := http.NewRouter(h, authz, adminRepo)

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupQueue(ch *amqp091.Channel) {
	h := queue.NewOrderPlacedHandler(queue.LogNotifier{})

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register("order.placed.q", queue.JSONHandler[usecase.OrderPlacedMsg]{HandleFunc: h.HandlePlaced})

	if err := router.Start(); err != nil {
		panic(err)
	}
}

func setupKafkaListener(cfg configs.Config, orders usecase.OrderRepo, statuses usecase.StatusCache) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		panic(err)
	}

	h := kafka.NewOrderStatusChangedHandler(orders, statuses)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.StatusTopic}, h.Handle)

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			panic(err)
		}
	}()
}
