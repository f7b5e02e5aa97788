package main

import (
	"log"

	"jubetech/config"
	authController "jubetech/controllers/auth"
	categoryController "jubetech/controllers/category"
	courseController "jubetech/controllers/course"
	groupController "jubetech/controllers/group"
	lessonController "jubetech/controllers/lesson"
	promotionController "jubetech/controllers/promotion"
	roleController "jubetech/controllers/role"
	sectionController "jubetech/controllers/section"
	uploadController "jubetech/controllers/upload"
	userController "jubetech/controllers/user"
	"jubetech/database"
	"jubetech/middleware"
	authRoutes "jubetech/routers/authRoutes"
	categoryRoutes "jubetech/routers/categoryRoutes"
	courseRoutes "jubetech/routers/courseRoutes"
	groupRoutes "jubetech/routers/groupRoutes"
	lessonRoutes "jubetech/routers/lessonRoutes"
	promotionRoutes "jubetech/routers/promotionRoutes"
	roleRoutes "jubetech/routers/roleRoutes"
	sectionRoutes "jubetech/routers/sectionRoutes"
	uploadRoutes "jubetech/routers/uploadRoutes"
	userRoutes "jubetech/routers/userRoutes"
	"jubetech/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.ConnectDb(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer database.Disconnect(db)

	mailer := utils.NewMailer(cfg)
	storage, err := utils.NewStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	auth := middleware.VerifyToken(db, cfg.JWTKey)

	authRoutes.SetupAuthRoutes(app, authController.NewAuthController(db, mailer, cfg))
	courseRoutes.SetupCourseRoutes(app, courseController.NewCourseController(db), auth)
	sectionRoutes.SetupSectionRoutes(app, sectionController.NewSectionController(db), auth)
	lessonRoutes.SetupLessonRoutes(app, lessonController.NewLessonController(db), auth)
	categoryRoutes.SetupCategoryRoutes(app, categoryController.NewCategoryController(db), auth)
	groupRoutes.SetupGroupRoutes(app, groupController.NewGroupController(db), auth)
	promotionRoutes.SetupPromotionRoutes(app, promotionController.NewPromotionController(db), auth)
	userRoutes.SetupUserRoutes(app, userController.NewUserController(db, cfg), auth)
	roleRoutes.SetupRoleRoutes(app, roleController.NewRoleController(db), auth)
	uploadRoutes.SetupUploadRoutes(app, uploadController.NewUploadController(storage), auth)

	scheduler := utils.InitializeMaintenanceScheduler(db)
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
