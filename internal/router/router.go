package router

import (
	"time"

	"aguacontrol/internal/cache"
	"aguacontrol/internal/config"
	"aguacontrol/internal/handler"
	"aguacontrol/internal/infra"
	"aguacontrol/internal/middleware"
	"aguacontrol/internal/repository"
	"aguacontrol/internal/service"
	"aguacontrol/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ledgerRetryWait separates reconnect attempts after a failed ledger read.
const ledgerRetryWait = time.Second

// New wires all dependencies and returns a configured Gin engine plus the
// report worker the caller should feed from the job queue (nil when SMTP is
// not configured).
// Dependency graph: Handler ← Service ← LedgerService ← Cache/Repository
func New(cfg *config.Config, ledger repository.LedgerRepository, rdb *redis.Client) (*gin.Engine, *worker.ReporteWorker) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Limit(middleware.NewIPLimiter(time.Minute/1000, 100), "Demasiadas solicitudes. Intente nuevamente en un momento."))

	// ── Cache ────────────────────────────────────────────────────────────────
	var snapshots cache.SnapshotCache = cache.NewMemory(cfg.CacheTTL())
	if rdb != nil {
		snapshots = cache.NewRedis(rdb, cfg.CacheTTL())
	}

	// ── Services ─────────────────────────────────────────────────────────────
	loc := cfg.Location()
	sesiones := service.NewSesionStore()
	ledgerSvc := service.NewLedgerService(ledger, snapshots, cfg.LedgerReadRetries, ledgerRetryWait)
	authSvc := service.NewAuthService(cfg, sesiones)
	ventaSvc := service.NewVentaService(ledgerSvc, ledger, loc)
	inventarioSvc := service.NewInventarioService(ledgerSvc, ledger, cfg.StockBajoLitros, loc)

	// Report e-mail: Redis queue when available, in-process otherwise.
	// The worker only builds reports, so it gets an instance without a queue.
	var (
		reporteWorker *worker.ReporteWorker
		envio         service.EnvioReportes
	)
	if mailer := infra.NewMailer(cfg); mailer.Configurado() {
		builder := service.NewReporteService(ledgerSvc, nil, "", loc)
		reporteWorker = worker.NewReporteWorker(builder, mailer, cfg.PDFStoragePath)
		if rdb != nil {
			envio = worker.NewDispatcher(rdb)
		} else {
			envio = worker.NewInlineDispatcher(reporteWorker)
		}
	}
	reporteSvc := service.NewReporteService(ledgerSvc, envio, cfg.ReporteEmail, loc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg.Env == "production")
	ventasH := handler.NewVentasHandler(ventaSvc, sesiones)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(ledger, rdb))

	// Auth (public)
	loginMW := middleware.LoginRateLimiter()
	auth := r.Group("/v1/auth")
	{
		auth.POST("/token", loginMW, authH.Token)
		auth.GET("/enlace", loginMW, authH.Enlace)
		auth.POST("/login", loginMW, authH.Login)
	}

	// Protected routes
	v1 := r.Group("/v1", middleware.SessionAuth(cfg.JWTSecret, sesiones))
	{
		v1.POST("/auth/logout", authH.Logout)

		v1.GET("/catalogo", ventasH.Catalogo)
		v1.POST("/catalogo/recargar", ventasH.RecargarCatalogo)

		carrito := v1.Group("/carrito")
		{
			carrito.GET("", ventasH.VerCarrito)
			carrito.DELETE("", ventasH.VaciarCarrito)
			carrito.POST("/items", ventasH.AgregarItem)
			carrito.DELETE("/items/:producto", ventasH.QuitarItem)
		}
		v1.POST("/ventas", ventasH.Cobrar)

		v1.GET("/stock", inventarioH.Stock)
		v1.GET("/cargas", inventarioH.ListarCargas)
		v1.POST("/cargas", inventarioH.RegistrarCarga)

		rep := v1.Group("/reportes")
		{
			rep.GET("/diario", reportesH.Diario)
			rep.GET("/semanal", reportesH.Semanal)
			rep.GET("/semanal/pdf", reportesH.SemanalPDF)
			rep.POST("/semanal/enviar", reportesH.Enviar)
		}
	}

	return r, reporteWorker
}
