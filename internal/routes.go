package internal

import (
	"net/http"
	"strings"

	"ihsearch/internal/controllers"
	"ihsearch/internal/providers"
	"ihsearch/internal/structures"
)

func InitRoutes(influencers *controllers.InfluencerController, metrics *controllers.MetricsController, posts *controllers.PostController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()
	base := strings.TrimSuffix(conf.WebServer.BasePath, "/")

	routers.Get(base+"/searchById", http.HandlerFunc(influencers.SearchByID))
	routers.Get(base+"/searchByName", http.HandlerFunc(influencers.SearchByName))
	routers.Get(base+"/searchByLocation", http.HandlerFunc(influencers.SearchByLocation))
	routers.Get(base+"/searchByPlatform", http.HandlerFunc(influencers.SearchByPlatform))
	routers.Get(base+"/searchByCategory", http.HandlerFunc(influencers.SearchByCategory))
	routers.Get(base+"/searchByGender", http.HandlerFunc(influencers.SearchByGender))
	routers.Get(base+"/searchByFilters", http.HandlerFunc(influencers.SearchByFilters))
	routers.Get(base+"/searchInfluencers", http.HandlerFunc(influencers.SearchInfluencers))
	routers.Post(base+"/search_by_metrics", http.HandlerFunc(influencers.SearchByMetrics))

	routers.Get(base+"/searchByEngagementRate", http.HandlerFunc(metrics.SearchByEngagementRate))
	routers.Get(base+"/searchByFollowersCount", http.HandlerFunc(metrics.SearchByFollowersCount))

	routers.Post(base+"/posts", http.HandlerFunc(posts.Create))
	routers.Get(base+"/posts", http.HandlerFunc(posts.List))
	routers.Get(base+"/posts/{id}", http.HandlerFunc(posts.Get))
	routers.Put(base+"/posts/{id}", http.HandlerFunc(posts.Update))
	routers.Delete(base+"/posts/{id}", http.HandlerFunc(posts.Delete))
	routers.Get(base+"/posts/search/influencer", http.HandlerFunc(posts.SearchByInfluencer))
	routers.Get(base+"/posts/search/url", http.HandlerFunc(posts.SearchByURL))
	routers.Get(base+"/posts/search/platform", http.HandlerFunc(posts.SearchByPlatform))
	return routers
}
