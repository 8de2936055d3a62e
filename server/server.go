package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/handlers"
	"github.com/ray-remotestate/resto-pos/utils"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes(menu *handlers.MenuHandler, transactions *handlers.TransactionHandler, reports *handlers.ReportHandler) *Server {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	router.HandleFunc("/menu", menu.Create).Methods("POST")
	router.HandleFunc("/menu", menu.List).Methods("GET")
	router.HandleFunc("/menu/{id}", menu.Detail).Methods("GET")
	router.HandleFunc("/menu/{id}", menu.Update).Methods("PUT")
	router.HandleFunc("/menu/{id}", menu.Delete).Methods("DELETE")

	router.HandleFunc("/transaction", transactions.Create).Methods("POST")
	router.HandleFunc("/transaction", transactions.List).Methods("GET")
	router.HandleFunc("/transaction/{id}", transactions.Detail).Methods("GET")
	router.HandleFunc("/transaction/{id}/items", transactions.Items).Methods("GET")
	router.HandleFunc("/transaction/{id}", transactions.UpdateStatus).Methods("PUT")
	router.HandleFunc("/transaction/{id}", transactions.Delete).Methods("DELETE")

	router.HandleFunc("/report/top-menu", reports.TopMenu).Methods("GET")
	router.HandleFunc("/report/daily-revenue", reports.DailyRevenue).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, apperrors.NotFoundf("route not found"))
	})

	// built here, not in Run, so Shutdown is safe even if the signal
	// arrives before the serve goroutine gets scheduled
	return &Server{
		Router: router,
		server: &http.Server{
			Handler:           router,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
		},
	}
}

func (svr *Server) Run(port string) error {
	svr.server.Addr = port
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
