package main

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/allape/openpad/config"
	"github.com/allape/openpad/pad"
	"github.com/allape/openpad/pad/button"
	"github.com/allape/openpad/pad/render"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"image/png"
	"net/http"
	"strconv"
)

type checkedBody struct {
	Checked *bool `json:"checked" binding:"required"`
}

type stickyBody struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func abort(c *gin.Context, err error) {
	status := http.StatusBadRequest
	var notFound *button.NotFoundError
	if errors.As(err, &notFound) {
		status = http.StatusNotFound
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func SetupRouter(server *pad.Server, conf config.Config) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	upgrader := websocket.Upgrader{}

	if conf.Websocket.Cors {
		engine.Use(cors.Default())
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	engine.GET(conf.Websocket.Path, func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			l.Warn().Println("upgrade:", err)
			return
		}
		defer func() {
			_ = conn.Close()
		}()

		err = server.HandleClient(Websocket2PadClient(conn))
		if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			l.Warn().Println("handle client:", err)
		}
	})

	api := engine.Group("/api")

	api.GET("/pad", func(c *gin.Context) {
		c.JSON(http.StatusOK, server.Snapshot())
	})

	api.GET("/pad.png", func(c *gin.Context) {
		size := conf.Render.Size
		if s := c.Query("size"); s != "" {
			var err error
			size, err = strconv.Atoi(s)
			if err != nil {
				abort(c, err)
				return
			}
			if size < render.MinSize || size > render.MaxSize {
				abort(c, fmt.Errorf("size must be within [%d, %d]", render.MinSize, render.MaxSize))
				return
			}
		}

		img, err := render.Draw(server.Snapshot(), size)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		buf := bytes.NewBuffer(nil)
		err = png.Encode(buf, img)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Data(http.StatusOK, "image/png", buf.Bytes())
	})

	api.PUT("/pad/sticky", func(c *gin.Context) {
		var body stickyBody
		err := c.ShouldBindJSON(&body)
		if err != nil {
			abort(c, err)
			return
		}
		server.SetStickyMode(*body.Enabled)
		c.JSON(http.StatusOK, server.Snapshot())
	})

	api.POST("/pad/reset", func(c *gin.Context) {
		server.ResetAll()
		c.JSON(http.StatusOK, server.Snapshot())
	})

	api.PUT("/buttons/:id", func(c *gin.Context) {
		id, err := button.ParseID(c.Param("id"))
		if err != nil {
			abort(c, err)
			return
		}

		var body checkedBody
		err = c.ShouldBindJSON(&body)
		if err != nil {
			abort(c, err)
			return
		}

		err = server.SetButtonChecked(id, *body.Checked)
		if err != nil {
			abort(c, err)
			return
		}

		c.JSON(http.StatusOK, server.Snapshot())
	})

	api.POST("/buttons/:id/:action", func(c *gin.Context) {
		id, err := button.ParseID(c.Param("id"))
		if err != nil {
			abort(c, err)
			return
		}

		switch c.Param("action") {
		case "press":
			err = server.Press(id)
		case "release":
			err = server.Release(id)
		case "cancel":
			err = server.Cancel(id)
		default:
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown action: " + c.Param("action")})
			return
		}
		if err != nil {
			abort(c, err)
			return
		}

		c.JSON(http.StatusOK, server.Snapshot())
	})

	SetupUI(engine, conf)

	return engine
}
