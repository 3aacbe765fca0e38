package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"CityTrends/internal/domain"
	"CityTrends/internal/logging"
	"CityTrends/internal/metrics"
	"CityTrends/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeService struct {
	err       error
	city      string
	n         int
	keyword   string
	compare   [4]any
	maxCities int
	favorites domain.Favorites
}

func (f *fakeService) Cities(context.Context) (usecase.CitiesView, error) {
	return usecase.CitiesView{Cities: []string{"Lima", "Pretoria"}, Default: "Pretoria", DefaultCompare: "Lima", Favorites: []string{}}, f.err
}

func (f *fakeService) Articles(_ context.Context, city string, n int) (usecase.ArticlesView, error) {
	f.city, f.n = city, n
	return usecase.ArticlesView{
		City:     city,
		Articles: []usecase.ArticleCard{{ScoredArticle: domain.ScoredArticle{Article: domain.Article{Title: "Harbour reopens"}, Sentiment: 0.3}, SentimentLabel: "positive"}},
	}, f.err
}

func (f *fakeService) Trends(_ context.Context, city string, n int, keyword string) (usecase.TrendsView, error) {
	f.city, f.n, f.keyword = city, n, keyword
	return usecase.TrendsView{City: city, Keyword: keyword}, f.err
}

func (f *fakeService) Clusters(_ context.Context, city string, n int) (usecase.ClustersView, error) {
	f.city, f.n = city, n
	return usecase.ClustersView{City: city, Topics: []usecase.TopicView{}, Message: "Not enough articles for clustering."}, f.err
}

func (f *fakeService) Compare(_ context.Context, a string, na int, b string, nb int) (usecase.CompareView, error) {
	f.compare = [4]any{a, na, b, nb}
	return usecase.CompareView{A: usecase.CitySummary{City: a}, B: usecase.CitySummary{City: b}}, f.err
}

func (f *fakeService) SentimentMap(_ context.Context, maxCities int) (usecase.MapView, error) {
	f.maxCities = maxCities
	return usecase.MapView{Points: []usecase.MapPoint{{City: "Tokyo", Sentiment: 0.2}}}, f.err
}

func (f *fakeService) Favorites(context.Context) (domain.Favorites, error) {
	return f.favorites, f.err
}

func (f *fakeService) AddFavoriteCity(_ context.Context, city string) (domain.Favorites, bool, error) {
	if strings.TrimSpace(city) == "" {
		return domain.Favorites{}, false, fmt.Errorf("%w: city is required", domain.ErrInvalidInput)
	}
	if f.favorites.HasCity(city) {
		return f.favorites, false, nil
	}
	f.favorites.Cities = append(f.favorites.Cities, city)
	return f.favorites, true, f.err
}

func (f *fakeService) AddFavoriteArticle(_ context.Context, article domain.Article) (domain.Favorites, bool, error) {
	if article.URL == "" {
		return domain.Favorites{}, false, fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	f.favorites.Articles = append(f.favorites.Articles, article)
	return f.favorites, true, f.err
}

func newTestRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	m.AddArticlesFetched(3)
	return NewRouter(NewHandler(service, m, logging.Discard()), []string{"http://localhost:3000"})
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := serve(r, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
}

func TestGetArticles_DefaultCount(t *testing.T) {
	service := &fakeService{}
	r := newTestRouter(service)

	w := serve(r, "GET", "/cities/Cape%20Town/articles", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cape Town", service.city)
	assert.Equal(t, 10, service.n)

	var res usecase.ArticlesView
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res.Articles))
	assert.Equal(t, "Harbour reopens", res.Articles[0].Article.Title)
	assert.Equal(t, "positive", res.Articles[0].SentimentLabel)
}

func TestGetArticles_ClampsCount(t *testing.T) {
	cases := map[string]int{
		"/cities/Lima/articles?n=2":   5,
		"/cities/Lima/articles?n=500": 30,
		"/cities/Lima/articles?n=abc": 10,
		"/cities/Lima/articles?n=12":  12,
	}
	for target, want := range cases {
		service := &fakeService{}
		r := newTestRouter(service)

		w := serve(r, "GET", target, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, service.n)
	}
}

func TestGetArticles_ConfigurationError(t *testing.T) {
	service := &fakeService{err: fmt.Errorf("%w: NEWSAPI_KEY is not set", domain.ErrConfiguration)}
	r := newTestRouter(service)

	w := serve(r, "GET", "/cities/Lima/articles", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, strings.Contains(res["error"], "NEWSAPI_KEY"))
}

func TestGetTrends_PassesKeyword(t *testing.T) {
	service := &fakeService{}
	r := newTestRouter(service)

	w := serve(r, "GET", "/cities/Oslo/trends?n=20&keyword=ferry", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ferry", service.keyword)
	assert.Equal(t, 20, service.n)
}

func TestGetClusters(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := serve(r, "GET", "/cities/Rome/clusters", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var res usecase.ClustersView
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Not enough articles for clustering.", res.Message)
}

func TestGetCompare_Defaults(t *testing.T) {
	service := &fakeService{}
	r := newTestRouter(service)

	w := serve(r, "GET", "/compare?nb=7", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [4]any{"Pretoria", 10, "Lima", 7}, service.compare)
}

func TestGetMap_ClampsMax(t *testing.T) {
	service := &fakeService{}
	r := newTestRouter(service)

	w := serve(r, "GET", "/map?max=1000", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, service.maxCities)

	serve(r, "GET", "/map", "")
	assert.Equal(t, 50, service.maxCities)
}

func TestPostFavoriteCity(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := serve(r, "POST", "/favorites/cities", `{"city":"Lima"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var res FavoritesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, res.Added)
	assert.Equal(t, []string{"Lima"}, res.Favorites.Cities)

	w = serve(r, "POST", "/favorites/cities", `{"city":"Lima"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, false, res.Added)
}

func TestPostFavoriteCity_InvalidBody(t *testing.T) {
	r := newTestRouter(&fakeService{})

	assert.Equal(t, http.StatusBadRequest, serve(r, "POST", "/favorites/cities", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "POST", "/favorites/cities", `{"city":"  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "POST", "/favorites/cities", `not json`).Code)
}

func TestPostFavoriteArticle(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := serve(r, "POST", "/favorites/articles", `{"title":"Port reopens","url":"https://news.test/port"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(r, "POST", "/favorites/articles", `{"title":"No link"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFavorites_StoreError(t *testing.T) {
	r := newTestRouter(&fakeService{err: errors.New("disk gone")})

	w := serve(r, "GET", "/favorites", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Internal error", res["error"])
}

func TestGetMetrics(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := serve(r, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]any
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, float64(3), res["articles_fetched"])
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/cities", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
