package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lbgsct/cryptobreak/proto/analysispb"
)

// Объявление upgrader для WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WatchResults пересылает поток WatchResults в WebSocket. Фильтр: ?operation=...
func (a *Analysis) WatchResults(c *gin.Context) {
	username := c.GetString("username")
	operation := c.Query("operation")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Ошибка при обновлении соединения:", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(analystContext(c))
	defer cancel()

	stream, err := a.Client.WatchResults(ctx, &analysispb.Request{Operation: operation})
	if err != nil {
		log.Printf("Не удалось подписаться на результаты для %s: %v", username, err)
		conn.WriteJSON(gin.H{"error": "Сервис анализа недоступен"})
		return
	}
	log.Printf("Пользователь %s подписался на результаты", username)

	// Читаем входящие кадры только чтобы заметить закрытие соединения
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		res, err := stream.Recv()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Ошибка при получении результата из потока: %v", err)
			}
			return
		}
		if err := conn.WriteJSON(NewResultView(res)); err != nil {
			log.Println("Ошибка при отправке результата в WebSocket:", err)
			return
		}
	}
}
