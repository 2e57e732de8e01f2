package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterStaticRoutes 挂载前端静态文件：
// - /web/* -> webDir
// - /      -> 重定向到 /web/
func RegisterStaticRoutes(r *gin.Engine, webDir string) {
	if r == nil || webDir == "" {
		return
	}
	r.Static("/web", webDir)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/web/")
	})
}
