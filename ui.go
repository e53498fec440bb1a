package main

import (
	_ "embed"
	"github.com/allape/openpad/config"
	"github.com/gin-gonic/gin"
	"net/http"
	"os"
)

//go:embed ui/pad.html
var PadHTML []byte

func SetupUI(engine *gin.Engine, conf config.Config) {
	engine.GET("/", func(c *gin.Context) {
		if conf.UI.Path != "" {
			if stat, err := os.Stat(conf.UI.Path); err == nil && !stat.IsDir() {
				c.File(conf.UI.Path)
				return
			}
			l.Warn().Println("ui page not found, serving the embedded one:", conf.UI.Path)
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", PadHTML)
	})
}
