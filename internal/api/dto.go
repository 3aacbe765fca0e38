package api

import "CityTrends/internal/domain"

type FavoriteCityRequest struct {
	City string `json:"city" binding:"required"`
}

type FavoritesResponse struct {
	Favorites domain.Favorites `json:"favorites"`
	Added     bool             `json:"added"`
}
