package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"yummy-backend/internal/api/handlers"
	"yummy-backend/internal/api/routes"
	"yummy-backend/internal/middleware"
	"yummy-backend/internal/utils"
	"yummy-backend/internal/utils/storage"
	"yummy-backend/pkg/cache"
	"yummy-backend/pkg/category"
	"yummy-backend/pkg/cookbook"
	"yummy-backend/pkg/ingredient"
	"yummy-backend/pkg/jwt"
	"yummy-backend/pkg/logger"
	"yummy-backend/pkg/menu"
	"yummy-backend/pkg/recipe"
	"yummy-backend/pkg/shopping"
)

// Services is the wired catalog core, shared by the HTTP app and the
// management commands.
type Services struct {
	Categories  category.CategoryService
	Recipes     recipe.RecipeService
	Menu        menu.MenuService
	Cookbooks   cookbook.CookbookService
	Ingredients ingredient.IngredientService
	Shopping    shopping.ShoppingService
}

func NewServices(db *gorm.DB, c cache.Cache, log *logger.Logger) *Services {
	utils.InitValidator()
	validator := utils.Validate
	loader := cache.NewLoader(c, utils.GetConfigSeconds("CACHE_TIMEOUT"), log)

	// Repository
	categoryRepository := category.NewCategoryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	cookbookRepository := cookbook.NewCookbookRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Service
	categoryService := category.NewCategoryService(categoryRepository, loader, validator, log)
	recipeService := recipe.NewRecipeService(recipeRepository, categoryService, loader, validator, recipe.Strategies{
		Thumbnail:       thumbnails(log),
		DefaultOrdering: utils.GetConfig("CATEGORY_ORDER_DEFAULT"),
		PhotoGap:        utils.GetConfigInt("PHOTO_ORDER_GAP"),
	}, log)
	ingredientService := ingredient.NewIngredientService(ingredientRepository, loader, validator, log)

	return &Services{
		Categories:  categoryService,
		Recipes:     recipeService,
		Menu:        menu.NewMenuService(menuRepository, recipeService, validator, utils.GetConfigInt("RECIPE_RECOMMENDATIONS_COUNT"), log),
		Cookbooks:   cookbook.NewCookbookService(cookbookRepository, recipeService, loader, validator, utils.GetConfig("DEFAULT_COOKBOOK_TITLE"), log),
		Ingredients: ingredientService,
		Shopping:    shopping.NewShoppingService(shoppingRepository, recipeService, ingredientService, validator, log),
	}
}

// NewCache picks redis when REDIS_ADDR is set and the in-process cache
// otherwise.
func NewCache(log *logger.Logger) (cache.Cache, error) {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		log.Info("REDIS_ADDR not set, using in-process cache")
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(addr, utils.GetConfigInt("REDIS_DB"), utils.GetConfig("CACHE_PREFIX"))
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func thumbnails(log *logger.Logger) storage.ThumbnailFunc {
	if utils.GetConfig("AWS_S3_BUCKET") == "" {
		return storage.PublicURLThumbnails(utils.GetConfig("MEDIA_URL"))
	}
	s3, err := storage.NewAwsS3()
	if err != nil {
		log.Warn("s3 thumbnails unavailable, serving media url", "error", err)
		return storage.PublicURLThumbnails(utils.GetConfig("MEDIA_URL"))
	}
	return s3.ThumbnailURL
}

func NewApp(services *Services, log *logger.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("LOG_MODE") == "dev",
	})
	middlewares := middleware.NewMiddleware()

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, err
	}
	app.Use(fiberLogger.New(fiberLogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), utils.GetConfig("JWT_ISSUER"))
	if utils.GetConfig("JWT_SECRET") == "" {
		log.Warn("JWT_SECRET is empty, owner tokens are not trustworthy")
	}

	// routes
	routesConfig := routes.Config{
		App:               app,
		CategoryHandler:   handlers.NewCategoryHandler(services.Categories),
		RecipeHandler:     handlers.NewRecipeHandler(services.Recipes),
		MenuHandler:       handlers.NewMenuHandler(services.Menu),
		CookbookHandler:   handlers.NewCookbookHandler(services.Cookbooks),
		IngredientHandler: handlers.NewIngredientHandler(services.Ingredients),
		ShoppingHandler:   handlers.NewShoppingHandler(services.Shopping),
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
