package routes

import (
	"github.com/gofiber/fiber/v2"

	"yummy-backend/internal/api/handlers"
	"yummy-backend/internal/middleware"
	"yummy-backend/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	CategoryHandler   handlers.CategoryHandler
	RecipeHandler     handlers.RecipeHandler
	MenuHandler       handlers.MenuHandler
	CookbookHandler   handlers.CookbookHandler
	IngredientHandler handlers.IngredientHandler
	ShoppingHandler   handlers.ShoppingHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Categories()
	c.Recipes()
	c.Menu()
	c.Ingredients()
	c.Cookbooks()
	c.ShoppingLists()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories")
	categories.Get("", c.CategoryHandler.GetRoots)
	categories.Get("/path/*", c.CategoryHandler.GetByPath)
	categories.Get("/:id/children", c.CategoryHandler.GetChildren)
	categories.Get("/:id/descendants", c.CategoryHandler.GetDescendants)
	categories.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.CategoryHandler.CreateCategory)
	categories.Patch("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.CategoryHandler.UpdateCategory)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/mine", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetMyRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Get("/:id/photos", c.RecipeHandler.GetPhotos)
	recipes.Get("/:id/ingredients", c.RecipeHandler.GetIngredients)

	auth := recipes.Group("", c.Middleware.AuthMiddleware(c.JWTService))
	auth.Post("", c.RecipeHandler.CreateRecipe)
	auth.Post("/:id/photos", c.RecipeHandler.AttachPhoto)
	auth.Patch("/:id/photos/:photo_id", c.RecipeHandler.SetPhotoVisibility)
	auth.Delete("/:id/photos/:photo_id", c.RecipeHandler.DetachPhoto)
	auth.Post("/:id/ingredients", c.RecipeHandler.AddIngredient)
	auth.Post("/:id/ingredient-groups", c.RecipeHandler.AddIngredientGroup)
}

func (c *Config) Menu() {
	c.App.Get("/api/v1/recommendations", c.MenuHandler.GetRecommendations)
	c.App.Post("/api/v1/recommendations", c.Middleware.AuthMiddleware(c.JWTService), c.MenuHandler.CreateRecommendation)

	weekMenu := c.App.Group("/api/v1/week-menu")
	weekMenu.Get("/day-menu", c.MenuHandler.GetDayMenu)
	weekMenu.Put("", c.Middleware.AuthMiddleware(c.JWTService), c.MenuHandler.SetWeekMenu)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients")
	ingredients.Get("/names", c.IngredientHandler.GetNames)
	ingredients.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.IngredientHandler.CreateIngredient)
	ingredients.Put("/conversions", c.Middleware.AuthMiddleware(c.JWTService), c.IngredientHandler.SaveConversion)
}

func (c *Config) Cookbooks() {
	cookbooks := c.App.Group("/api/v1/cookbooks", c.Middleware.AuthMiddleware(c.JWTService))
	cookbooks.Get("", c.CookbookHandler.GetCookbooks)
	cookbooks.Post("", c.CookbookHandler.CreateCookbook)
	cookbooks.Get("/count", c.CookbookHandler.GetRecipesCount)
	cookbooks.Post("/recipes", c.CookbookHandler.AddRecipe)
	cookbooks.Get("/recipes/:recipe_id", c.CookbookHandler.GetItemsForRecipe)
	cookbooks.Get("/:id/recipes", c.CookbookHandler.GetCookbookRecipes)
	cookbooks.Patch("/:id/recipes/:recipe_id", c.CookbookHandler.UpdateNote)
	cookbooks.Delete("/:id/recipes/:recipe_id", c.CookbookHandler.RemoveRecipe)
}

func (c *Config) ShoppingLists() {
	lists := c.App.Group("/api/v1/shopping-lists", c.Middleware.AuthMiddleware(c.JWTService))
	lists.Post("", c.ShoppingHandler.CreateList)
	lists.Get("/:id", c.ShoppingHandler.GetList)
	lists.Post("/:id/recipes/:recipe_id", c.ShoppingHandler.AddRecipe)
}
