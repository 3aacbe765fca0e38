package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter registers every dashboard route on a fresh gin engine.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: allowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.GET("/health", h.GetHealth)
	r.GET("/metrics", h.GetMetrics)

	r.GET("/cities", h.GetCities)
	r.GET("/cities/:city/articles", h.GetArticles)
	r.GET("/cities/:city/trends", h.GetTrends)
	r.GET("/cities/:city/clusters", h.GetClusters)

	r.GET("/compare", h.GetCompare)
	r.GET("/map", h.GetMap)

	r.GET("/favorites", h.GetFavorites)
	r.POST("/favorites/cities", h.PostFavoriteCity)
	r.POST("/favorites/articles", h.PostFavoriteArticle)

	return r
}
