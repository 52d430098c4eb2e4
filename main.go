package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"eggshop/internal/cart"
	"eggshop/internal/config"
	"eggshop/internal/database"
	"eggshop/internal/handlers"
	"eggshop/internal/imghost"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("⚠️ product index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("⚠️ category index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}

	store, err := cart.NewFileStore(config.AppEnv.CartDir)
	if err != nil {
		log.Fatal(err)
	}
	sessions := handlers.NewCartSessions(store)
	images := imghost.New(config.AppEnv.ImgHostURL, config.AppEnv.ImgHostKey)
	orders := &handlers.MongoOrders{DB: db}

	r := gin.Default()

	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/products", handlers.GetProducts(db))
	r.GET("/regions", handlers.GetRegions())
	r.GET("/builder-options", handlers.GetBuilderOptions())

	r.POST("/orders", handlers.CreateOrder(db))
	r.GET("/orders", handlers.GetOrders(db))
	r.DELETE("/orders/:id", handlers.DeleteOrder(db))

	r.GET("/cart", handlers.GetCart(sessions))
	r.POST("/cart/items", handlers.AddCartItem(sessions))
	r.PATCH("/cart/items", handlers.UpdateCartItem(sessions))
	r.DELETE("/cart/items", handlers.RemoveCartItem(sessions))
	r.POST("/cart/clear", handlers.ClearCart(sessions))
	r.POST("/cart/stage", handlers.SetCartStage(sessions))

	r.POST("/checkout/quote", handlers.CheckoutQuote(sessions))
	r.POST("/checkout/submit", handlers.SubmitCheckout(sessions, orders, config.AppEnv.WhatsAppNumber))

	r.POST("/custom-egg", handlers.SubmitCustomEgg(sessions, config.AppEnv.WhatsAppNumber))

	admin := r.Group("/admin/api")
	{
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))
		admin.POST("/products/:id/image", handlers.UploadProductImage(db, images))

		admin.POST("/categories", handlers.CreateCategory(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
