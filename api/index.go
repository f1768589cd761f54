package handler

import (
	"net/http"
	"sync"

	"hotelos/config"
	"hotelos/di"
	"hotelos/shared/logger"
	hotelHTTP "hotelos/transport/http"
)

var (
	server *hotelHTTP.HTTP
	once   sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()

		logger.Configure(config.Get())

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
