package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eggshop/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name" binding:"required"`
	Weight    string  `json:"weight" binding:"required"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" binding:"required"`
	Flavor    string  `json:"flavor"`
	Shell     string  `json:"shell"`
}

type createOrderRequest struct {
	Items         []createOrderItemRequest `json:"items" binding:"required"`
	Total         string                   `json:"total" binding:"required"`
	PaymentMethod string                   `json:"paymentMethod" binding:"required"`
	Method        string                   `json:"method"`
	Address       string                   `json:"address"`
	Region        string                   `json:"region"`
	Date          string                   `json:"date"`
	Notes         string                   `json:"notes"`
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		order, err := buildOrderFromRequest(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		log.Printf("[%s] order created: %s", route, order.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"orderId": order.ID.Hex(),
			"message": "order created",
		})
	}
}

func buildOrderFromRequest(req createOrderRequest) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return models.Order{}, errors.New("quantity must be greater than zero")
		}
		if item.Price < 0 {
			return models.Order{}, errors.New("price must not be negative")
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      strings.TrimSpace(item.Name),
			Weight:    item.Weight,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Flavor:    strings.TrimSpace(item.Flavor),
			Shell:     strings.TrimSpace(item.Shell),
		})
	}

	return models.Order{
		Items:         items,
		Total:         strings.TrimSpace(req.Total),
		Method:        req.Method,
		Address:       strings.TrimSpace(req.Address),
		Region:        req.Region,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		Notes:         strings.TrimSpace(req.Notes),
		Status:        "pending",
		CreatedAt:     time.Now(),
	}, nil
}

/* =========================
   GET / DELETE ORDERS
========================= */

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(
			ctx,
			bson.M{},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders could not be fetched"})
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

/* =========================
   ORDER CREATOR ADAPTER
========================= */

// MongoOrders adapts the orders collection to the checkout's OrderCreator
// contract.
type MongoOrders struct {
	DB *mongo.Database
}

func (m *MongoOrders) CreateOrder(ctx context.Context, order models.Order) (string, error) {
	insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.DB.Collection("orders").InsertOne(insertCtx, order)
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return id.Hex(), nil
}
