package routes

import (
	"github.com/gofiber/fiber/v2"

	"studytracker/backend/controllers"
	"studytracker/backend/middleware"
	"studytracker/backend/repository"
)

func SetupRoutes(app *fiber.App, repo *repository.Repository) {
	// Auth routes
	authController := controllers.NewAuthController(repo)
	app.Post("/users/", authController.Register)
	app.Post("/register", authController.Register)
	app.Post("/login", authController.Login)

	// Middleware
	identity := middleware.IdentityMiddleware()

	// User routes
	userController := controllers.NewUserController(repo)
	app.Get("/users/me", identity, userController.GetMe)

	// Subject routes
	subjectController := controllers.NewSubjectController(repo)
	subjects := app.Group("/subjects")
	subjects.Get("/", subjectController.ListSubjects)
	subjects.Post("/", subjectController.CreateSubject)
	subjects.Put("/:id", subjectController.UpdateSubject)
	subjects.Delete("/:id", subjectController.DeleteSubject)

	// Study routes
	studyController := controllers.NewStudyController(repo)
	progressController := controllers.NewProgressController(repo)
	study := app.Group("/study", identity)
	study.Get("/", studyController.ListStudySessions)
	study.Post("/", studyController.CreateStudySession)
	study.Get("/summary", progressController.GetSummary)
	study.Get("/:id", studyController.GetStudySession)
	study.Put("/:id", studyController.UpdateStudySession)
	study.Delete("/:id", studyController.DeleteStudySession)

	// Goal routes
	goalController := controllers.NewGoalController(repo)
	goals := app.Group("/goals", identity)
	goals.Get("/", goalController.ListGoals)
	goals.Post("/", goalController.CreateGoal)
	goals.Get("/:id", goalController.GetGoal)
	goals.Put("/:id", goalController.UpdateGoal)
	goals.Delete("/:id", goalController.DeleteGoal)
	goals.Post("/:id/mark-daily", goalController.MarkDaily)
}
