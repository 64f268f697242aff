package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/apparel-store/config"
	"github.com/alimikegami/apparel-store/internal/controller"
	"github.com/alimikegami/apparel-store/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/apparel-store/internal/infrastructure/storage"
	"github.com/alimikegami/apparel-store/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/apparel-store/internal/middleware"
	"github.com/alimikegami/apparel-store/internal/repository"
	"github.com/alimikegami/apparel-store/internal/service"
	"github.com/alimikegami/apparel-store/pkg/response"
	"github.com/alimikegami/apparel-store/pkg/utils"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "apparel-store"

type App struct {
	DB      *mongo.Database
	Config  *config.Config
	Server  *echo.Echo
	Metrics *echo.Echo

	tracerProvider *trace.TracerProvider
	orders         service.OrderService
	publisher      *kafka.Publisher
	scheduler      gocron.Scheduler
}

// Services groups everything the route layer needs.
type Services struct {
	Orders     service.OrderService
	Products   service.ProductService
	Categories service.CategoryService
	Reviews    service.ReviewService
	Users      service.UserService
	Ratings    *service.RatingAggregator
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	ctx := context.Background()

	if err := repository.EnsureIndexes(ctx, app.DB); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	objectStorage, err := app.createStorage(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create object storage")
	}

	svcs := app.createServices(objectStorage, app.createPublisher(), app.createNotifier())
	app.orders = svcs.Orders

	if err := svcs.Orders.SyncOrderNumberSequence(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to sync order number sequence")
	}

	app.startScheduler(svcs.Ratings)

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator()

	app.useTracing(e)

	// Used empty string so that metrics are not prefixed with the service name
	e.Use(echoprometheus.NewMiddleware(""))
	app.Metrics = echo.New()
	app.Metrics.HideBanner = true
	app.Metrics.GET("/metrics", echoprometheus.NewHandler())
	go func() {
		if err := app.Metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	g := e.Group("/api")
	g.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Ctx(c.Request().Context()).Info().
				Str("method", v.Method).
				Str("URI", v.URI).
				Int("status", v.Status).
				Int64("latency", v.Latency.Microseconds()).
				Str("remote IP", v.RemoteIP).
				Msg("Request")

			return nil
		},
	}))

	RegisterRoutes(g, svcs, localmiddleware.IsLoggedIn(app.Config.JWTSecret))

	app.Server = e
	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

// RegisterRoutes mounts every controller on g.
func RegisterRoutes(g *echo.Group, svcs Services, isLoggedIn echo.MiddlewareFunc) {
	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	controller.CreateProductController(g, svcs.Products)
	controller.CreateReviewController(g, svcs.Reviews)
	controller.CreateCategoryController(g, svcs.Categories)
	controller.CreateOrderController(g, svcs.Orders)
	controller.CreateUserController(g, svcs.Users, isLoggedIn)
}

func (app *App) createServices(objectStorage service.ObjectStorage, events service.EventPublisher, notifier service.OrderNotifier) Services {
	trx := repository.CreateNewTransactor(app.DB)
	productRepo := repository.CreateNewProductRepository(app.DB)
	categoryRepo := repository.CreateNewCategoryRepository(app.DB)
	reviewRepo := repository.CreateNewReviewRepository(app.DB)
	orderRepo := repository.CreateNewOrderRepository(app.DB)
	counterRepo := repository.CreateNewCounterRepository(app.DB)
	userRepo := repository.CreateNewUserRepository(app.DB)

	ratings := service.CreateRatingAggregator(productRepo, reviewRepo)

	return Services{
		Orders:     service.CreateOrderService(trx, orderRepo, counterRepo, productRepo, categoryRepo, events, notifier),
		Products:   service.CreateProductService(trx, productRepo, categoryRepo, reviewRepo, objectStorage, events),
		Categories: service.CreateCategoryService(categoryRepo, objectStorage),
		Reviews:    service.CreateReviewService(trx, reviewRepo, productRepo, ratings, objectStorage),
		Users:      service.CreateUserService(userRepo, *app.Config),
		Ratings:    ratings,
	}
}

func (app *App) createStorage(ctx context.Context) (*storage.S3Storage, error) {
	client, err := storage.CreateS3Client(ctx, app.Config.AWSConfig)
	if err != nil {
		return nil, err
	}

	return storage.CreateS3Storage(client, app.Config.AWSConfig.BucketName, app.Config.AWSConfig.Region), nil
}

func (app *App) createPublisher() service.EventPublisher {
	if !app.Config.KafkaConfig.Enabled() {
		log.Info().Msg("Broker not configured, domain events are not published")
		return service.NoopPublisher{}
	}

	app.publisher = kafka.CreatePublisher(kafka.CreateKafkaWriter(app.Config))
	return app.publisher
}

func (app *App) createNotifier() service.OrderNotifier {
	if !app.Config.SMTPConfig.Enabled() {
		log.Info().Msg("SMTP not configured, order confirmations are not sent")
		return service.NoopNotifier{}
	}

	return service.CreateEmailNotifier(app.Config.SMTPConfig)
}

func (app *App) useTracing(e *echo.Echo) {
	if !app.Config.TracingConfig.Enabled() {
		return
	}

	tp, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost, serviceName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
		return
	}
	app.tracerProvider = tp

	tracer := tp.Tracer(serviceName)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := otel.GetTextMapPropagator().Extract(c.Request().Context(), propagation.HeaderCarrier(c.Request().Header))
			ctx, span := tracer.Start(ctx, fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	})
}

func (app *App) startScheduler(ratings *service.RatingAggregator) {
	if app.Config.RatingReconcileInterval <= 0 {
		return
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			app.Config.RatingReconcileInterval,
		),
		gocron.NewTask(
			ratings.ReconcileJob,
		),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule rating reconciliation")
	}

	s.Start()
	app.scheduler = s
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var failures []error
	if app.scheduler != nil {
		failures = append(failures, app.scheduler.Shutdown())
	}
	if app.Server != nil {
		failures = append(failures, app.Server.Shutdown(ctx))
	}
	if app.Metrics != nil {
		failures = append(failures, app.Metrics.Shutdown(ctx))
	}
	// queued order events still need the publisher
	if app.orders != nil {
		app.orders.Close()
	}
	if app.publisher != nil {
		failures = append(failures, app.publisher.Close())
	}
	if app.tracerProvider != nil {
		failures = append(failures, app.tracerProvider.Shutdown(ctx))
	}

	return errors.Join(failures...)
}
