package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HSouheill/sower_backend/config"
	"github.com/HSouheill/sower_backend/controllers"
	"github.com/HSouheill/sower_backend/events"
	"github.com/HSouheill/sower_backend/middleware"
	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/repositories"
	"github.com/HSouheill/sower_backend/routes"
	"github.com/HSouheill/sower_backend/services"
	"github.com/HSouheill/sower_backend/utils"
	"github.com/HSouheill/sower_backend/websocket"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), config.Load(viper.GetViper()))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// stores are the persistence backends of one server instance.
type stores struct {
	members      services.MemberStore
	transactions services.TransactionStore
	users        services.UserStore
	seats        services.GoldenSeatStore
	tx           services.Transactor
}

func mongoStores(client *mongo.Client, db *mongo.Database) stores {
	return stores{
		members:      repositories.NewMemberRepository(db),
		transactions: repositories.NewTransactionRepository(db),
		users:        repositories.NewUserRepository(db),
		seats:        repositories.NewGoldenSeatRepository(db),
		tx:           repositories.NewMongoTransactor(client),
	}
}

func memoryStores(members ...models.Member) stores {
	memberRepo := repositories.NewMemoryMemberRepository(members...)
	txnRepo := repositories.NewMemoryTransactionRepository()
	seatRepo := repositories.NewMemoryGoldenSeatRepository()
	return stores{
		members:      memberRepo,
		transactions: txnRepo,
		users:        repositories.NewMemoryUserRepository(),
		seats:        seatRepo,
		tx:           repositories.NewMemoryTransactor(memberRepo, txnRepo, seatRepo),
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st stores
	if cfg.MongoURI == "" && cfg.IsDevelopment() {
		log.Warn().Msg("MONGO_URI is not set, using in-memory stores")
		st = memoryStores()
	} else {
		client, err := config.ConnectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		db := config.GetDatabase(client, cfg)
		if err := repositories.EnsureIndexes(ctx, db); err != nil {
			log.Error().Err(err).Msg("Error creating indexes")
		}
		st = mongoStores(client, db)
	}

	var blacklist middleware.TokenBlacklist
	if redisClient := config.ConnectRedis(ctx, cfg); redisClient != nil {
		defer redisClient.Close()
		blacklist = middleware.NewRedisBlacklist(redisClient)
	} else {
		memory := middleware.NewMemoryBlacklist()
		go memory.RunCleanup(ctx, time.Hour)
		blacklist = memory
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	publisher := events.Fanout{events.NewPublisher(cfg.KafkaBroker, cfg.KafkaTopic), hub}
	defer publisher.Close()

	e := newServer(cfg, st, blacklist, publisher, hub)

	rateLimiter := middleware.NewRateLimiter()
	go rateLimiter.RunCleanup(ctx, time.Hour)
	e.Use(rateLimiter.RateLimit())

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newServer wires services, controllers and routes onto a new echo instance.
func newServer(cfg config.Config, st stores, blacklist middleware.TokenBlacklist, publisher services.EventPublisher, hub *websocket.Hub) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = utils.NewCustomValidator()

	e.Use(middleware.SetLogger(middleware.RequestLoggerConfig{SkipPath: []string{"/health", "/metrics"}}))
	e.Use(echoMiddleware.Recover())
	cors := middleware.NewCORSConfig(cfg.ClientURL)
	e.Use(middleware.CORSWithConfig(cors))
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: cors.AllowOrigins,
		HSTS:           !cfg.IsDevelopment(),
	}))

	memberService := services.NewMemberService(st.members)
	referralService := services.NewReferralService(st.members, st.transactions, st.users, cfg.TreeMaxLevel)
	enrollmentService := services.NewEnrollmentService(st.members, st.transactions, st.seats, publisher, st.tx)
	goldenSeatService := services.NewGoldenSeatService(st.seats, st.members)
	transactionService := services.NewTransactionService(st.transactions, st.users)

	routes.SetupRoutes(e, routes.Handlers{
		Auth:         controllers.NewAuthController(blacklist),
		Member:       controllers.NewMemberController(enrollmentService, memberService),
		Referral:     controllers.NewReferralController(referralService, memberService, cfg.ReferralLinkBase),
		GoldenSeat:   controllers.NewGoldenSeatController(goldenSeatService),
		Transaction:  controllers.NewTransactionController(transactionService),
		Notification: controllers.NewNotificationController(hub, cors.AllowOrigins),
	},
		middleware.JWTMiddleware(cfg.JWTSecret),
		middleware.RejectRevoked(blacklist),
	)

	return e
}
