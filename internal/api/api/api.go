package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"waitlist/cmd/middleware"
	"waitlist/internal/ratelimit"
	"waitlist/internal/service"
)

type Routers struct {
	Service service.Service
	Limits  *ratelimit.Config
}

func NewRouters(r *Routers) *ginext.Engine {
	limits := r.Limits
	if limits == nil {
		limits = ratelimit.DefaultConfig()
	}

	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(middleware.SecurityHeaders())
	app.Use(cors.Default())

	apiGroup := app.Group("/api")
	apiGroup.Use(middleware.NoCache())
	apiGroup.Use(middleware.RateLimit(ratelimit.New(limits.APILimit, limits.APIWindow)))

	apiGroup.GET("/status", r.Service.Status)
	apiGroup.GET("/orders", r.Service.Orders)
	apiGroup.POST("/buy",
		middleware.RateLimit(ratelimit.New(limits.BuyLimit, limits.BuyWindow)),
		r.Service.Buy,
	)
	apiGroup.POST("/reset", r.Service.Reset)

	return app
}
