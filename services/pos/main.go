package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/restobarhq/restobar/pkg"
	"github.com/restobarhq/restobar/pkg/watermark"
	"github.com/restobarhq/restobar/services/pos/internal/catalog"
	"github.com/restobarhq/restobar/services/pos/internal/kitchen"
	"github.com/restobarhq/restobar/services/pos/internal/mongo"
	"github.com/restobarhq/restobar/services/pos/internal/order"
	"github.com/restobarhq/restobar/services/pos/internal/poll"
)

const (
	appNamespace = "POS"
	appName      = "pos"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	seedCtx, cancelSeeds := context.WithCancel(ctx)
	defer cancelSeeds()

	baseRepo := mongo.NewBaseRepo(config, logger)
	err = baseRepo.Start(ctx)
	if err != nil {
		log.Fatalf("%s(%s) cannot start base repository: %v", appName, appVersion, err)
	}

	db := baseRepo.GetDatabase()
	if db == nil {
		log.Fatalf("%s(%s) cannot initialize repository database: %v", appName, appVersion, errors.New("repository database is nil"))
	}

	itemRepo := mongo.NewItemRepo(db)
	categoryRepo := mongo.NewCategoryRepo(db)
	orderRepo := mongo.NewOrderRepo(db)
	orderItemRepo := mongo.NewOrderItemRepo(db)
	paymentMethodRepo := mongo.NewPaymentMethodRepo(db)
	counterRepo := mongo.NewCounterRepo(db)

	repos := order.Repos{
		Orders:     orderRepo,
		OrderItems: orderItemRepo,
		Payments:   paymentMethodRepo,
		Counters:   counterRepo,
	}

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	pub, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	sub, err := pkg.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
	}

	marks := watermark.NewClock()

	keeper := catalog.NewStockKeeper(itemRepo, marks, pub, logger)

	serviceChargePct := 10.0
	if raw := config.GetStringOrDef("billing.service_charge_pct", ""); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatalf("%s(%s) invalid billing.service_charge_pct: %v", appName, appVersion, err)
		}
		serviceChargePct = parsed
	}
	intake := order.NewIntake(repos, categoryRepo, keeper, marks, pub, serviceChargePct, logger)
	machine := order.NewStateMachine(repos, marks, pub, logger)

	orderCache := kitchen.NewActiveOrderCache(repos, logger)
	orderSub := kitchen.NewSubscriber(sub, orderCache, logger)

	catalogHandler := catalog.NewHandler(itemRepo, categoryRepo, keeper, config, logger)
	orderHandler := order.NewHandler(intake, machine, repos, config, logger)
	kitchenHandler := kitchen.NewHandler(orderCache, repos, marks, config, logger)
	pollHandler := poll.NewHandler(marks, itemRepo, categoryRepo, orderRepo, orderItemRepo, config, logger)

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	}

	subLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return sub.Close()
		},
	}

	cacheLifecycle := apt.LifecycleHooks{
		OnStart: func(ctx context.Context) error {
			if err := orderCache.Warm(ctx); err != nil {
				return err
			}
			return orderSub.Start(ctx)
		},
	}

	// Setup demo seeding if enabled
	demoEnabled, _ := config.GetString("seeding.demo")
	var seedHooks apt.LifecycleHooks
	if demoEnabled == "true" {
		logger.Info("Demo seeding enabled for pos service")
		seedHooks = apt.LifecycleHooks{
			OnStart: func(context.Context) error {
				if err := catalog.ApplyDemoSeeds(seedCtx, itemRepo, categoryRepo, db, logger); err != nil {
					return err
				}
				return order.ApplyDemoSeeds(seedCtx, paymentMethodRepo, db, logger)
			},
			OnStop: func(context.Context) error {
				cancelSeeds()
				return nil
			},
		}
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: true, // Internal API service
	})

	// Defense-in-depth: restrict to internal networks only.
	// This complements (does not replace) network policies at the infrastructure level.
	stack = append(stack, middleware.InternalOnly())

	lifecycles := []interface{}{
		apt.LifecycleHooks{OnStop: baseRepo.Stop},
		cacheLifecycle,
		publisherLifecycle,
		subLifecycle,
	}
	if demoEnabled == "true" {
		lifecycles = append(lifecycles, seedHooks)
	}

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", catalogHandler, orderHandler, kitchenHandler, pollHandler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	err = ms.Run(ctx)
	if err != nil {
		_ = baseRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
