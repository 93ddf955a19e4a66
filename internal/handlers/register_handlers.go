package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerDateValidation()

	r.Use(cors.New(corsConfig(cfg)))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		// Fall back to a safe default rather than refusing to start.
		rate, _ = limiter.NewRateFromFormatted("300-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1",
		middleware.RateLimit(ipLimiter),
		middleware.CallerIdentityMiddleware(),
	)

	registerFiscalYearRoutes(v1, services.FiscalYear)
	registerChartAccountRoutes(v1, services.ChartAccount)
	registerEntryRoutes(v1, services.Ledger)
	registerLinkRoutes(v1, services.Link)
	registerCostAccountingRoutes(v1, services.CostAccounting)
	registerThirdRoutes(v1, services.Third)
	registerBillRoutes(v1, services.Bill)
	registerPayoffRoutes(v1, services.Payoff)
	registerBudgetRoutes(v1, services.Budget)
	registerModelEntryRoutes(v1, services.ModelEntry)
	registerParameterRoutes(v1, services.Parameter)
	registerReportingRoutes(v1, services.Reporting)
}

// corsConfig builds the CORS policy: permissive in development, no browser
// origins expected in production (the API sits behind the ERP gateway).
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-User-ID")
	corsCfg.MaxAge = 12 * time.Hour
	if cfg.IsProduction {
		corsCfg.AllowOrigins = []string{}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}

// registerDateValidation teaches the binding validator the wire date format
// used by entry, bill and payoff requests.
func registerDateValidation() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ymddate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
	}
}
