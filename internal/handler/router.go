package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(newsHandler *NewsHandler, articleHandler *ArticleHandler, staticHandler *StaticHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{requestIDHeader},
	}))

	r.GET("/health", staticHandler.GetHealth)
	r.GET("/widgets.json", staticHandler.GetWidgets)
	r.GET("/terminal", staticHandler.GetTerminal)

	r.GET("/stories/list", newsHandler.GetStories)
	r.GET("/news/markdown", newsHandler.GetMarkdown)
	r.GET("/news/iframe", newsHandler.GetIframe)
	for _, route := range proxyRoutes {
		r.GET(route.Path, newsHandler.Proxy(route))
	}

	r.GET("/article", articleHandler.GetArticle)

	return r
}
