package routes

import (
	"asset-inventory-backend/app"
	"asset-inventory-backend/controllers"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	userCtl := controllers.NewUserController(s)
	catCtl := controllers.NewCategoryController(s)
	assetCtl := controllers.NewAssetController(s)
	lendCtl := controllers.NewLendingController(s)
	reportCtl := controllers.NewReportController(s)

	authMW := app.AuthRequired(a.Sessions(), a.Config)
	adminMW := app.AdminOnly()
	managerMW := app.ManagerOrAdmin()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// Auth
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authCtl.Login)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.POST("/logout", authCtl.Logout)
		authed.GET("/whoami", authCtl.WhoAmI)
	}

	// User management (admin only)
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.POST("", userCtl.CreateUser)
		users.GET("", userCtl.ListUsers)
		users.GET("/:id", userCtl.GetUser)
	}

	// Categories
	cats := r.Group("/api/categories", authMW, seenMW)
	{
		cats.GET("", catCtl.List)
		cats.GET("/:id", catCtl.Get)
		cats.POST("", managerMW, catCtl.Create)
		cats.PUT("/:id", managerMW, catCtl.Update)
		cats.DELETE("/:id", managerMW, catCtl.Delete)
	}

	// Assets
	assets := r.Group("/api/assets", authMW, seenMW)
	{
		assets.GET("", assetCtl.List) // ?categoryId= | ?status=
		assets.GET("/:id", assetCtl.Get)
		assets.POST("", managerMW, assetCtl.Create)
		assets.PUT("/:id", managerMW, assetCtl.Update)
		assets.DELETE("/:id", managerMW, assetCtl.Delete)
	}

	// Lendings
	lendings := r.Group("/api/lendings", authMW, seenMW)
	{
		lendings.GET("", lendCtl.List) // ?status=active|overdue&assetId=
		lendings.GET("/:id", lendCtl.Get)
		lendings.POST("", lendCtl.Create)
		lendings.POST("/:id/return", lendCtl.Return)
		lendings.PUT("/:id", managerMW, lendCtl.Update)
	}

	// Reports
	reports := r.Group("/api/reports", authMW, seenMW)
	{
		reports.POST("", reportCtl.Generate)
	}
}
