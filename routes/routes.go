package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"travel-backend/config"
	"travel-backend/controllers"
	"travel-backend/logger"
	"travel-backend/middleware"
	"travel-backend/models"
)

// Controllers groups everything the router dispatches to.
type Controllers struct {
	Packages     *controllers.PackageController
	Destinations *controllers.DestinationController
	Currencies   *controllers.CurrencyController
	Enquiries    *controllers.EnquiryController
	Admin        *controllers.AdminController
	Blogs        *controllers.ContentController[models.Blog]
	Reviews      *controllers.ContentController[models.Review]
	FAQs         *controllers.ContentController[models.FAQ]
	Services     *controllers.ContentController[models.Service]
	Seo          *controllers.ContentController[models.SeoMeta]
}

type contentRoutes interface {
	AdminList(*gin.Context)
	AdminGet(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func mountContentAdmin(g *gin.RouterGroup, path string, c contentRoutes) {
	grp := g.Group(path)
	grp.GET("", c.AdminList)
	grp.POST("", c.Create)
	grp.GET("/:id", c.AdminGet)
	grp.PUT("/:id", c.Update)
	grp.DELETE("/:id", c.Delete)
}

func SetupRouter(cfg *config.AppConfig, log *logger.Logger, ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))
	r.Static("/uploads", cfg.UploadDir)

	origins := cfg.CORSOrigin
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		packages := api.Group("/packages")
		{
			packages.GET("", ctl.Packages.ListPackages)
			// static segments must be registered alongside /:slug
			packages.GET("/filter-options", ctl.Packages.FilterOptions)
			packages.GET("/featured", ctl.Packages.HomeRails)
			packages.GET("/:slug", ctl.Packages.GetPackageBySlug)
		}

		api.GET("/destinations", ctl.Destinations.ListDestinations)
		api.GET("/destinations/:slug", ctl.Destinations.GetDestinationBySlug)
		api.GET("/currencies", ctl.Currencies.ListCurrencies)

		api.GET("/blogs", ctl.Blogs.PublicList)
		api.GET("/blogs/:slug", ctl.Blogs.PublicGetBySlug)
		api.GET("/reviews", ctl.Reviews.PublicList)
		api.GET("/faqs", ctl.FAQs.PublicList)
		api.GET("/services", ctl.Services.PublicList)
		api.GET("/services/:slug", ctl.Services.PublicGetBySlug)
		api.GET("/seo", ctl.Seo.PublicGetByPath)

		api.POST("/enquiries",
			middleware.RateLimit(cfg.Enquiry.RatePerMinute, cfg.Enquiry.RateBurst, log),
			ctl.Enquiries.SubmitEnquiry,
		)
		api.POST("/auth/login", ctl.Admin.Login)
	}

	admin := api.Group("/admin", middleware.AdminAuth(cfg.Auth.JWTSecret, log))
	{
		admin.GET("/me", ctl.Admin.Me)
		admin.GET("/dashboard/counts", ctl.Admin.DashboardCounts)
		admin.GET("/notifications", ctl.Admin.Notifications)
		admin.POST("/uploads", ctl.Admin.UploadImage)

		pkgs := admin.Group("/packages")
		{
			pkgs.GET("", ctl.Packages.AdminListPackages)
			pkgs.POST("", ctl.Packages.CreatePackage)
			pkgs.GET("/:id", ctl.Packages.AdminGetPackage)
			pkgs.PUT("/:id", ctl.Packages.UpdatePackage)
			pkgs.DELETE("/:id", ctl.Packages.DeletePackage)
			pkgs.PATCH("/:id/flags", ctl.Packages.SetPackageFlags)
			pkgs.GET("/:id/export", ctl.Packages.ExportPackage)
		}

		dests := admin.Group("/destinations")
		{
			dests.GET("", ctl.Destinations.AdminListDestinations)
			dests.POST("", ctl.Destinations.CreateDestination)
			dests.GET("/:id", ctl.Destinations.AdminGetDestination)
			dests.PUT("/:id", ctl.Destinations.UpdateDestination)
			dests.DELETE("/:id", ctl.Destinations.DeleteDestination)
		}

		currencies := admin.Group("/currencies")
		{
			currencies.GET("", ctl.Currencies.AdminListCurrencies)
			currencies.POST("", ctl.Currencies.CreateCurrency)
			currencies.GET("/:id", ctl.Currencies.AdminGetCurrency)
			currencies.PUT("/:id", ctl.Currencies.UpdateCurrency)
			currencies.DELETE("/:id", ctl.Currencies.DeleteCurrency)
		}

		enquiries := admin.Group("/enquiries")
		{
			enquiries.GET("", ctl.Enquiries.ListEnquiries)
			enquiries.GET("/:id", ctl.Enquiries.GetEnquiry)
			enquiries.PATCH("/:id", ctl.Enquiries.UpdateEnquiry)
			enquiries.DELETE("/:id", ctl.Enquiries.DeleteEnquiry)
		}

		mountContentAdmin(admin, "/blogs", ctl.Blogs)
		mountContentAdmin(admin, "/reviews", ctl.Reviews)
		mountContentAdmin(admin, "/faqs", ctl.FAQs)
		mountContentAdmin(admin, "/services", ctl.Services)
		mountContentAdmin(admin, "/seo", ctl.Seo)
	}

	return r
}
