package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"CityTrends/internal/domain"
	"CityTrends/internal/metrics"
	"CityTrends/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	defaultArticles = 10
	minArticles     = 5
	maxArticles     = 30

	defaultMapCities = 50
	minMapCities     = 5
	maxMapCities     = 100
)

// Service is the dashboard surface the handlers render.
type Service interface {
	Cities(ctx context.Context) (usecase.CitiesView, error)
	Articles(ctx context.Context, city string, n int) (usecase.ArticlesView, error)
	Trends(ctx context.Context, city string, n int, keyword string) (usecase.TrendsView, error)
	Clusters(ctx context.Context, city string, n int) (usecase.ClustersView, error)
	Compare(ctx context.Context, cityA string, nA int, cityB string, nB int) (usecase.CompareView, error)
	SentimentMap(ctx context.Context, maxCities int) (usecase.MapView, error)
	Favorites(ctx context.Context) (domain.Favorites, error)
	AddFavoriteCity(ctx context.Context, city string) (domain.Favorites, bool, error)
	AddFavoriteArticle(ctx context.Context, article domain.Article) (domain.Favorites, bool, error)
}

var _ Service = (*usecase.Dashboard)(nil)

type Handler struct {
	service Service
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewHandler(service Service, m *metrics.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, metrics: m, logger: logger}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) GetCities(c *gin.Context) {
	view, err := h.service.Cities(c.Request.Context())
	if err != nil {
		h.writeError(c, "error listing cities", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetArticles(c *gin.Context) {
	city := c.Param("city")
	view, err := h.service.Articles(c.Request.Context(), city, h.articleCount(c, "n"))
	if err != nil {
		h.writeError(c, "error building articles view", err, "city", city)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetTrends(c *gin.Context) {
	city := c.Param("city")
	view, err := h.service.Trends(c.Request.Context(), city, h.articleCount(c, "n"), c.Query("keyword"))
	if err != nil {
		h.writeError(c, "error building trends view", err, "city", city)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetClusters(c *gin.Context) {
	city := c.Param("city")
	view, err := h.service.Clusters(c.Request.Context(), city, h.articleCount(c, "n"))
	if err != nil {
		h.writeError(c, "error building clusters view", err, "city", city)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetCompare falls back to the default city pair when a or b is omitted.
func (h *Handler) GetCompare(c *gin.Context) {
	ctx := c.Request.Context()
	cityA, cityB := c.Query("a"), c.Query("b")

	if cityA == "" || cityB == "" {
		cities, err := h.service.Cities(ctx)
		if err != nil {
			h.writeError(c, "error listing cities", err)
			return
		}
		if cityA == "" {
			cityA = cities.Default
		}
		if cityB == "" {
			cityB = cities.DefaultCompare
		}
	}

	view, err := h.service.Compare(ctx, cityA, h.articleCount(c, "na"), cityB, h.articleCount(c, "nb"))
	if err != nil {
		h.writeError(c, "error building compare view", err, "a", cityA, "b", cityB)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetMap(c *gin.Context) {
	maxCities := h.clampedQuery(c, "max", defaultMapCities, minMapCities, maxMapCities)
	view, err := h.service.SentimentMap(c.Request.Context(), maxCities)
	if err != nil {
		h.writeError(c, "error building sentiment map", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetFavorites(c *gin.Context) {
	favorites, err := h.service.Favorites(c.Request.Context())
	if err != nil {
		h.writeError(c, "error loading favorites", err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *Handler) PostFavoriteCity(c *gin.Context) {
	var req FavoriteCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	favorites, added, err := h.service.AddFavoriteCity(c.Request.Context(), req.City)
	if err != nil {
		h.writeError(c, "error saving favorite city", err, "city", req.City)
		return
	}
	c.JSON(statusFor(added), FavoritesResponse{Favorites: favorites, Added: added})
}

func (h *Handler) PostFavoriteArticle(c *gin.Context) {
	var req domain.Article
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	favorites, added, err := h.service.AddFavoriteArticle(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, "error saving favorite article", err, "url", req.URL)
		return
	}
	c.JSON(statusFor(added), FavoritesResponse{Favorites: favorites, Added: added})
}

func (h *Handler) GetMetrics(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, h.metrics.GetStats())
}

func statusFor(added bool) int {
	if added {
		return http.StatusCreated
	}
	return http.StatusOK
}

func (h *Handler) writeError(c *gin.Context, msg string, err error, args ...any) {
	h.logger.Error(msg, append(args, "error", err)...)

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConfiguration):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func (h *Handler) articleCount(c *gin.Context, name string) int {
	return h.clampedQuery(c, name, defaultArticles, minArticles, maxArticles)
}

func (h *Handler) clampedQuery(c *gin.Context, name string, defaultValue, lo, hi int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}

	if value < lo {
		h.logger.Warn("query parameter below min, clamping", "param", name, "value", value, "min", lo)
		return lo
	}
	if value > hi {
		h.logger.Warn("query parameter exceeds max, clamping", "param", name, "value", value, "max", hi)
		return hi
	}
	return value
}
