package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petsitter/config"
	"petsitter/cron"
	"petsitter/database"
	bookingRepo "petsitter/database/repository/booking"
	reviewRepo "petsitter/database/repository/review"
	sitterRepo "petsitter/database/repository/sitter"
	taxonomyRepo "petsitter/database/repository/taxonomy"
	userRepo "petsitter/database/repository/user"
	"petsitter/handlers"
	"petsitter/routes"
	"petsitter/services/admin"
	"petsitter/services/booking"
	"petsitter/services/notification"
	"petsitter/services/review"
	"petsitter/services/sitter"
	"petsitter/services/storage"
	"petsitter/services/taxonomy"
	"petsitter/services/user"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "petsitter",
		Short: "Pet sitting marketplace API",
		RunE:  runServer,
	}
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE:  runServer,
		},
		&cobra.Command{
			Use:   "worker",
			Short: "Run the push notification worker",
			RunE:  runWorker,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

type repositories struct {
	bookings   bookingRepo.BookingRepository
	reviews    reviewRepo.ReviewRepository
	sitters    sitterRepo.SitterRepository
	accounts   userRepo.AccountRepository
	taxonomies taxonomyRepo.TaxonomyRepository
}

// openRepositories builds every Mongo repository, stopping at the first one whose indexes fail.
func openRepositories(db *mongo.Database) (*repositories, error) {
	var (
		r   repositories
		err error
	)
	if r.bookings, err = bookingRepo.NewMongoBookingRepo(db); err != nil {
		return nil, err
	}
	if r.reviews, err = reviewRepo.NewMongoReviewRepo(db); err != nil {
		return nil, err
	}
	if r.sitters, err = sitterRepo.NewMongoSitterRepo(db); err != nil {
		return nil, err
	}
	if r.accounts, err = userRepo.NewMongoAccountRepo(db); err != nil {
		return nil, err
	}
	if r.taxonomies, err = taxonomyRepo.NewMongoTaxonomyRepo(db); err != nil {
		return nil, err
	}
	return &r, nil
}

func runServer(_ *cobra.Command, _ []string) error {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()

	ctx, stop := signalContext()
	defer stop()
	go utils.StartHealthMonitor(ctx, 30*time.Second,
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	cld, err := utils.Cloudinary()
	if err != nil {
		return fmt.Errorf("main: failed to initialize cloudinary: %w", err)
	}

	repos, err := openRepositories(database.DB())
	if err != nil {
		return fmt.Errorf("main: %w", err)
	}

	var events notification.Publisher = notification.NoopPublisher{}
	if config.AppConfig.NotificationsEnabled {
		queue := asynq.NewClient(cron.RedisOpt())
		defer queue.Close()
		events = notification.NewAsynqPublisher(queue, logger)
	}

	// services.
	accountService := &user.DefaultAccountService{
		Repo:     repos.accounts,
		Sessions: &user.RedisSessionCache{Client: utils.GetAuthCacheClient()},
		TokenTTL: config.AppConfig.TokenTTL,
		Logger:   logger,
	}
	taxonomyService := &taxonomy.DefaultTaxonomyService{
		Repo:     repos.taxonomies,
		Bookings: repos.bookings,
		Services: repos.sitters,
		Logger:   logger,
	}
	reviewService := &review.DefaultReviewService{
		Bookings: repos.bookings,
		Reviews:  repos.reviews,
		Cache:    review.NewRedisRatingCache(utils.GetCacheClient(), 10*time.Minute),
		Logger:   logger,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:     repos.bookings,
		Reviews:  repos.reviews,
		Sitters:  repos.sitters,
		Taxonomy: repos.taxonomies,
		Storage:  storage.NewCloudinaryStorage(cld, config.AppConfig.SlipFolder),
		Events:   events,
		Ratings:  reviewService,
		Logger:   logger,
	}
	sitterService, err := sitter.NewDefaultSitterService(repos.sitters, repos.bookings, taxonomyService, logger)
	if err != nil {
		return fmt.Errorf("main: %w", err)
	}
	adminService := &admin.DefaultAdminService{Accounts: repos.accounts, Logger: logger}

	hb := handlers.NewHandlerBundle(handlers.Services{
		Accounts: accountService,
		Bookings: bookingService,
		Reviews:  reviewService,
		Taxonomy: taxonomyService,
		Sitters:  sitterService,
		Admin:    adminService,
	}, config.AppConfig.AdminToken)
	if config.AppConfig.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN is empty, the admin API is locked")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, hb, routes.Options{
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,
		RequestTimeout:    config.AppConfig.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + config.AppConfig.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", zap.String("addr", srv.Addr))
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("main: server failed: %w", err)
	case <-ctx.Done():
	}
	logger.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("main: server forced to shutdown: %w", err)
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Warn("failed to close mongo client", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
	return nil
}

func runWorker(_ *cobra.Command, _ []string) error {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	ctx, stop := signalContext()
	defer stop()

	fcm, err := utils.NewFCMClient(ctx)
	if err != nil {
		return fmt.Errorf("main: %w", err)
	}
	accounts, err := userRepo.NewMongoAccountRepo(database.DB())
	if err != nil {
		return fmt.Errorf("main: %w", err)
	}
	notifSvc := &notification.DefaultNotificationService{
		Accounts: accounts,
		Sender:   &notification.FCMSender{Client: fcm},
		Logger:   logger,
	}

	err = cron.RunNotificationWorker(ctx, notifSvc, logger)
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cerr := database.Close(closeCtx); cerr != nil {
		logger.Warn("failed to close mongo client", zap.Error(cerr))
	}
	return err
}
