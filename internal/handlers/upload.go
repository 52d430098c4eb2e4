package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"eggshop/internal/imghost"
)

const maxImageSize = 5 << 20

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// UploadProductImage forwards a product photo to the image host and stores
// the returned URL on the product.
func UploadProductImage(db *mongo.Database, images *imghost.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/products/:id/image"
		defer handlePanic(c, route)

		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "image file is required")
			return
		}

		if err := validateImageFile(file.Filename, file.Size); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		in, err := file.Open()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "could not read upload")
			return
		}
		defer in.Close()

		data, err := io.ReadAll(in)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "could not read upload")
			return
		}

		url, err := images.Upload(c.Request.Context(), file.Filename, data)
		if err != nil {
			respondWithError(c, http.StatusBadGateway, route, "image host error")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{"_id": productID, "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{"imageUrl": url}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"imageUrl": url})
	}
}

func validateImageFile(filename string, size int64) error {
	extension := strings.ToLower(filepath.Ext(filename))
	if extension == "" {
		return fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedImageExtensions[extension]; !ok {
		return fmt.Errorf("unsupported image type: %s", extension)
	}
	if size > maxImageSize {
		return fmt.Errorf("image file too large (max 5MB)")
	}
	return nil
}
