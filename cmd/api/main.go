package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-pickup-orders.git/internal/config"
	"github.com/ariefcatur/go-pickup-orders.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-pickup-orders.git/internal/kafka"
	"github.com/ariefcatur/go-pickup-orders.git/internal/menu"
	"github.com/ariefcatur/go-pickup-orders.git/internal/orders"
	"github.com/ariefcatur/go-pickup-orders.git/internal/postgres"
	"github.com/ariefcatur/go-pickup-orders.git/internal/redisx"
	"github.com/ariefcatur/go-pickup-orders.git/internal/slots"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := postgres.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers (placed & status, dua topic berbeda)
	pPlaced := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	pPlaced.Start(ctx)
	pStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
	pStatus.Start(ctx)

	// Repos & handlers
	orderRepo := &orders.Repo{DB: db}
	router := httpx.NewRouter()
	(&httpx.OrdersHandler{
		Repo:           orderRepo,
		PlacedProducer: pPlaced,
		Redis:          rdb,
		Service:        cfg.ServiceName,
		UnpaidExpiry:   cfg.UnpaidExpiry,
	}).Register(router)
	(&httpx.SlotsHandler{Repo: &slots.Repo{DB: db}, Redis: rdb}).Register(router)
	(&httpx.MenuHandler{Repo: &menu.Repo{DB: db}}).Register(router)
	(&httpx.StaffHandler{
		Repo:           orderRepo,
		StatusProducer: pStatus,
		Redis:          rdb,
		Service:        cfg.ServiceName,
		Token:          cfg.StaffToken,
	}).Register(router)

	// Background: sweeper auto-cancel order PENDING yang kadaluarsa
	sweeper := &orders.Sweeper{
		Repo:     orderRepo,
		Interval: cfg.SweepInterval,
		OnCanceled: func(orderIDs []string) {
			for _, id := range orderIDs {
				ev := orders.Envelope{
					EventID:       uuid.NewString(),
					EventType:     orders.EventOrderStatusChanged,
					EventVersion:  1,
					OccurredAt:    time.Now().UTC(),
					Producer:      cfg.ServiceName + "-sweeper",
					CorrelationID: id,
					Payload: kafkax.MustMarshal(orders.OrderStatusChangedPayload{
						OrderID:    id,
						FromStatus: orders.StatusPending,
						ToStatus:   orders.StatusCanceled,
						Actor:      "sweeper",
					}),
				}
				pStatus.Publish(orders.PartitionKey(id), kafkax.MustMarshal(ev),
					kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderStatusChanged)},
					kafkago.Header{Key: "x-event-version", Value: []byte("1")},
				)
			}
		},
	}
	go sweeper.Run(ctx)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pPlaced.Close() // tutup inbox -> flush & close writer
	pStatus.Close()
	cancel() // stop sweeper & producer loop
	pPlaced.WaitClosed()
	pStatus.WaitClosed()
}
