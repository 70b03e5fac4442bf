package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/cvdoc/capture"
	"businessconnect-backend/cvdoc/export"
	"businessconnect-backend/cvdoc/render"
	"businessconnect-backend/internal/account"
	googleauth "businessconnect-backend/internal/auth"
	"businessconnect-backend/internal/cvs"
	"businessconnect-backend/internal/exports"
	"businessconnect-backend/internal/formations"
	"businessconnect-backend/internal/importer"
	"businessconnect-backend/internal/jobs"
	"businessconnect-backend/internal/payments"
	"businessconnect-backend/internal/queue"
	"businessconnect-backend/internal/shared/config"
	"businessconnect-backend/internal/shared/server"
	"businessconnect-backend/internal/shared/storage/db"
	"businessconnect-backend/internal/shared/storage/object"
	localstore "businessconnect-backend/internal/shared/storage/object/local"
	s3store "businessconnect-backend/internal/shared/storage/object/s3"
	"businessconnect-backend/internal/subscriptions"
	"businessconnect-backend/internal/users"
)

// App holds shared dependencies constructed once at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	JobsRepo          jobs.JobsRepo
	FormationsRepo    formations.FormationsRepo
	CVsRepo           cvs.CVsRepo
	ExportsRepo       exports.ExportsRepo
	SubscriptionsRepo subscriptions.SubscriptionsRepo
	UsersRepo         users.Repo

	JobsService          *jobs.Service
	FormationsService    *formations.Service
	CVsService           *cvs.Service
	ExportsService       *exports.Service
	SubscriptionsService *subscriptions.Service
	AccountService       *account.Service
	UsersService         *users.Service
	PaymentsGateway      payments.Gateway

	JobsHandler          *jobs.Handler
	FormationsHandler    *formations.Handler
	CVsHandler           *cvs.Handler
	ExportsHandler       *exports.Handler
	ImporterHandler      *importer.Handler
	SubscriptionsHandler *subscriptions.Handler
	AccountHandler       *account.Handler
	UsersHandler         *users.Handler
	GoogleAuth           *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Router: nil,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:               app.Config,
		JobsHandler:          app.JobsHandler,
		FormationsHandler:    app.FormationsHandler,
		CVsHandler:           app.CVsHandler,
		ExportsHandler:       app.ExportsHandler,
		ImporterHandler:      app.ImporterHandler,
		SubscriptionsHandler: app.SubscriptionsHandler,
		AccountHandler:       app.AccountHandler,
		UsersHandler:         app.UsersHandler,
		GoogleAuth:           app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.ExportQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var (
		jobsRepo       jobs.JobsRepo
		formationsRepo formations.FormationsRepo
		cvsRepo        cvs.CVsRepo
		exportsRepo    exports.ExportsRepo
		subsRepo       subscriptions.SubscriptionsRepo
		usersRepo      users.Repo
	)

	if app.DB != nil {
		jobsRepo = &jobs.PGRepo{DB: app.DB}
		formationsRepo = &formations.PGRepo{DB: app.DB}
		cvsRepo = &cvs.PGRepo{DB: app.DB}
		exportsRepo = &exports.PGRepo{DB: app.DB}
		subsRepo = &subscriptions.PGRepo{DB: app.DB}
		usersRepo = &users.PGRepo{DB: app.DB}
	} else {
		jobsRepo = jobs.NewMemoryRepo()
		formationsRepo = formations.NewMemoryRepo()
		cvsRepo = cvs.NewMemoryRepo()
		exportsRepo = exports.NewMemoryRepo()
		subsRepo = subscriptions.NewMemoryRepo()
		usersRepo = users.NewMemoryRepo()
	}

	exporter := export.NewExporter(render.DefaultRegistry(), func(ctx context.Context) (capture.Rasterizer, error) {
		return capture.NewChromeRasterizer(ctx, app.Config.ChromePath)
	})

	jobsSvc := &jobs.Service{Repo: jobsRepo}
	formationsSvc := &formations.Service{Repo: formationsRepo}
	cvsSvc := &cvs.Service{Repo: cvsRepo}
	exportsSvc := &exports.Service{
		Repo:     exportsRepo,
		CVs:      cvsRepo,
		Store:    app.Store,
		Queue:    app.Queue,
		Exporter: exporter,
	}

	gateway := payments.NewPayTechClient(
		app.Config.PaymentGatewayURL,
		app.Config.PaymentAPIKey,
		app.Config.PaymentAPISecret,
	)
	subsSvc := &subscriptions.Service{
		Repo:            subsRepo,
		Gateway:         gateway,
		CallbackBaseURL: strings.TrimRight(app.Config.UIRedirectURL, "/"),
	}

	usersSvc := users.NewService(usersRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		usersSvc,
	)

	app.JobsRepo = jobsRepo
	app.FormationsRepo = formationsRepo
	app.CVsRepo = cvsRepo
	app.ExportsRepo = exportsRepo
	app.SubscriptionsRepo = subsRepo
	app.UsersRepo = usersRepo
	app.JobsService = jobsSvc
	app.FormationsService = formationsSvc
	app.CVsService = cvsSvc
	app.ExportsService = exportsSvc
	app.SubscriptionsService = subsSvc
	app.AccountService = account.NewService(cvsRepo, exportsRepo)
	app.UsersService = usersSvc
	app.PaymentsGateway = gateway
	app.JobsHandler = jobs.NewHandler(jobsSvc)
	app.FormationsHandler = formations.NewHandler(formationsSvc)
	app.CVsHandler = cvs.NewHandler(cvsSvc)
	app.ExportsHandler = exports.NewHandler(exportsSvc)
	app.ImporterHandler = importer.NewHandler()
	app.SubscriptionsHandler = subscriptions.NewHandler(subsSvc)
	app.AccountHandler = account.NewHandler(app.AccountService)
	app.UsersHandler = users.NewHandler(usersSvc)
	app.GoogleAuth = googleAuthSvc

	if app.CVsHandler == nil || app.ExportsHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}
