package api

import (
	"net/http"
	"time"

	xlogger "AstroCore/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Same-origin checks are left to the deployment proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// TransitsStream upgrades to WebSocket and pushes the current transit chart
// on connect and then on every stream interval tick until the client leaves.
func (h *AstrologyEchoHandler) TransitsStream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()

	// read loop only to observe the close frame
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	push := func() error {
		res, err := h.calc.Transits(ctx, time.Now().UTC())
		if err != nil {
			return err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(res)
	}

	if err := push(); err != nil {
		h.logger.Warn("transit stream initial push failed", xlogger.Error(err))
		return nil
	}

	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case <-ticker.C:
			if err := push(); err != nil {
				h.logger.Debug("transit stream closed", xlogger.Error(err))
				return nil
			}
		}
	}
}
