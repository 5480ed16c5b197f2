package routes

import (
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/controllers"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/middlewares"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		api.POST("/auth/login", controllers.Login)

		auth := api.Group("/", middlewares.Auth())

		auth.GET("/profile", controllers.Profile)
		auth.GET("/notifications", controllers.GetMyNotifications)
		auth.POST("/notifications/:id/read", controllers.MarkNotificationRead)
		auth.GET("/dashboard/summary", controllers.GetDashboard)

		// ================= ADMIN =================
		admin := auth.Group("/admin", middlewares.RequireRoles())
		{
			admin.GET("/users", controllers.AdminListUsers)
			admin.POST("/users", controllers.AdminCreateUser)
			admin.PUT("/users/:id", controllers.AdminUpdateUser)
			admin.GET("/audit-logs", controllers.GetAuditLogs)
		}

		// ================= PURCHASING =================
		purchasing := auth.Group("/", middlewares.RequireRoles(models.RoleFinance, models.RolePlantManager, models.RoleCEO))
		{
			purchasing.POST("/batches/purchase", controllers.CreatePurchase)
			purchasing.POST("/batches/third-party", controllers.CreateThirdPartyIntake)

			supplier := purchasing.Group("/suppliers")
			{
				supplier.GET("/", controllers.GetAllSuppliers)
				supplier.GET("/:id", controllers.GetSupplierByID)
				supplier.POST("/", controllers.CreateSupplier)
				supplier.PUT("/:id", controllers.UpdateSupplier)
				supplier.DELETE("/:id", controllers.DeleteSupplier)
			}
			purchasing.GET("/third-parties", controllers.GetAllThirdParties)
			purchasing.POST("/third-parties", controllers.CreateThirdParty)
		}

		// batches are visible to every authenticated role
		auth.GET("/batches", controllers.GetAllBatches)
		auth.GET("/batches/:id", controllers.GetBatchByID)
		auth.PUT("/batches/:id/quantity", middlewares.RequireRoles(), controllers.CorrectBatchQuantity)
		auth.POST("/batches/:id/reprocess", middlewares.RequireRoles(models.RolePlantManager, models.RoleQuality), controllers.ReprocessBatch)

		// ================= GATE =================
		gate := auth.Group("/gate", middlewares.RequireRoles(models.RoleSecurity))
		{
			gate.POST("/weighings", controllers.CreateWeighing)
			gate.PUT("/weighings/:id", controllers.UpdateWeighing)
			gate.GET("/weighings", controllers.GetWeighings)
		}

		// ================= WAREHOUSE =================
		warehouse := auth.Group("/warehouse", middlewares.RequireRoles(models.RoleWarehouse))
		{
			warehouse.POST("/entries", controllers.ReceiveAtWarehouse)
			warehouse.GET("/entries", controllers.GetWarehouseEntries)
			warehouse.GET("/jutebags", controllers.GetJuteBagInventory)
			warehouse.PUT("/jutebags/:size", controllers.RestockJuteBags)
		}

		// ================= QUALITY =================
		quality := auth.Group("/quality", middlewares.RequireRoles(models.RoleQuality))
		{
			quality.POST("/checks", controllers.RecordQualityCheck)
			quality.PUT("/checks/:id", controllers.UpdateQualityCheck)
			quality.GET("/checks", controllers.GetQualityChecks)
		}

		// ================= PROCESSING =================
		processing := auth.Group("/processing", middlewares.RequireRoles(models.RolePlantManager))
		{
			processing.GET("/ready-batches", controllers.GetReadyBatches)
			processing.POST("/runs/start", controllers.StartProcessingRun)
			processing.POST("/runs/:id/complete", controllers.CompleteProcessingRun)
			processing.POST("/runs", controllers.CreateProcessingRun)
			processing.GET("/runs", controllers.GetProcessingRuns)
			processing.GET("/runs/:id", controllers.GetProcessingRunByID)
			processing.POST("/runs/:id/costs", controllers.AddProcessingCost)
		}

		// ================= EXPORT =================
		export := auth.Group("/", middlewares.RequireRoles(models.RoleExportManager, models.RoleCEO))
		{
			export.POST("/contracts", controllers.CreateContract)
			export.GET("/contracts", controllers.GetAllContracts)
			export.GET("/contracts/:id", controllers.GetContractByID)
			export.POST("/contracts/:id/approve", controllers.ApproveContract)
			export.POST("/contracts/:id/reject", controllers.RejectContract)
			export.POST("/contracts/:id/costs", controllers.AddContractCost)
			export.POST("/batches/:id/dispatch", controllers.DispatchBatch)
			export.POST("/batches/:id/shipped", controllers.MarkBatchShipped)
		}

		// ================= FINANCE =================
		finance := auth.Group("/", middlewares.RequireRoles(models.RoleFinance))
		{
			finance.POST("/batches/:id/storage-costs", controllers.AddStorageCost)
			finance.GET("/settings/exchange-rates", controllers.GetExchangeRates)
			finance.POST("/settings/exchange-rates", controllers.PostExchangeRate)
		}
	}
}
