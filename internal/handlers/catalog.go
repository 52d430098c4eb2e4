package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eggshop/internal/models"
	"eggshop/internal/pricing"
)

func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("categories").Find(
			ctx,
			bson.M{"isActive": true},
			options.Find().SetSort(bson.D{{Key: "position", Value: 1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var categories []models.Category
		if err := cursor.All(ctx, &categories); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d categories", route, len(categories))
		c.JSON(http.StatusOK, categories)
	}
}

/*
GET /products
- category + search filters
- pagination applies only when page AND limit are present
- each product carries its flavor options resolved
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{
			"isActive":  bson.M{"$ne": false},
			"isDeleted": bson.M{"$ne": true},
		}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			ctgCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			var ctg models.Category
			err := db.Collection("categories").FindOne(ctgCtx, bson.M{"slug": category}).Decode(&ctg)
			cancel()
			if err != nil {
				c.JSON(http.StatusOK, []models.Product{})
				return
			}
			filter["categoryId"] = ctg.ID
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			findOptions.
				SetSkip((page - 1) * limit).
				SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		if err := resolveFlavors(ctx, db, products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, products)
	}
}

// resolveFlavors attaches the flavor documents referenced by each product.
func resolveFlavors(ctx context.Context, db *mongo.Database, products []models.Product) error {
	ids := make(map[int]struct{})
	for _, p := range products {
		for _, id := range p.FlavorIDs {
			ids[id] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	list := make([]int, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}

	cursor, err := db.Collection("flavors").Find(ctx, bson.M{
		"_id":      bson.M{"$in": list},
		"isActive": true,
	})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var flavors []models.Flavor
	if err := cursor.All(ctx, &flavors); err != nil {
		return err
	}

	byID := make(map[int]models.Flavor, len(flavors))
	for _, f := range flavors {
		byID[f.ID] = f
	}

	for i := range products {
		resolved := make([]models.Flavor, 0, len(products[i].FlavorIDs))
		for _, id := range products[i].FlavorIDs {
			if f, ok := byID[id]; ok {
				resolved = append(resolved, f)
			}
		}
		products[i].Flavors = resolved
	}
	return nil
}

// GetRegions exposes the static delivery-fee zones to the storefront.
func GetRegions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pricing.Regions())
	}
}

// GetBuilderOptions exposes the custom-egg tables: weights, shells with
// their topping lists, and fillings.
func GetBuilderOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		shells := make([]gin.H, 0)
		for _, s := range pricing.Shells() {
			shells = append(shells, gin.H{
				"name":     s,
				"toppings": pricing.Toppings(s),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"weights":  pricing.Weights(),
			"shells":   shells,
			"fillings": pricing.Fillings(),
		})
	}
}
