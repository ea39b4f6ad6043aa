package handlers

import (
	"net/http"
	"os"

	"property-verify/backend/internal/cache"
	"property-verify/backend/internal/repositories"
	"property-verify/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SystemHandler struct {
	db          *gorm.DB
	seedService services.SeedService
	cache       *cache.RedisCache
}

func NewSystemHandler(db *gorm.DB, seedService services.SeedService, cacheInstance *cache.RedisCache) *SystemHandler {
	return &SystemHandler{db: db, seedService: seedService, cache: cacheInstance}
}

func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the property verification backend!"})
}

func (h *SystemHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
}

// Seed inserts demo data into empty collections. Safe to call repeatedly.
func (h *SystemHandler) Seed(c *gin.Context) {
	if err := h.seedService.Seed(h.db); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to seed data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// TestDatabase reports store connectivity and configuration presence. Unlike
// the task endpoints it catches store errors and reports them in the body.
func (h *SystemHandler) TestDatabase(c *gin.Context) {
	response := gin.H{
		"backend":           "running",
		"database":          "not available",
		"connection_status": "not connected",
		"collections":       []string{},
	}

	response["database_url"] = envPresence("DATABASE_URL")
	response["database_name"] = envPresence("DATABASE_NAME")

	if h.db != nil {
		if err := repositories.Ping(h.db); err != nil {
			response["database"] = "error: " + truncate(err.Error(), 50)
		} else {
			response["database"] = "connected"
			response["connection_status"] = "connected"

			if tables, err := repositories.CollectionNames(h.db); err != nil {
				response["database"] = "connected but error: " + truncate(err.Error(), 50)
			} else {
				if len(tables) > 10 {
					tables = tables[:10]
				}
				response["collections"] = tables
			}
		}
	}

	if h.cache != nil {
		if err := h.cache.Health(); err != nil {
			response["cache"] = "error: " + truncate(err.Error(), 50)
		} else {
			response["cache"] = "connected"
		}
	}

	c.JSON(http.StatusOK, response)
}

func envPresence(key string) string {
	if os.Getenv(key) != "" {
		return "set"
	}
	return "not set"
}

// truncate shortens s to at most n runes so multi-byte characters in
// driver error messages are never split.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
