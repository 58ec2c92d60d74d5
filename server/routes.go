package server

import "net/http"

func (s *Server) initRoutes() {
	mw := s.apiMiddleware()

	s.mux.HandleFunc("POST /api/auth", ChainMiddleware(s.handle(s.registerHandler), mw...))
	s.mux.HandleFunc("PUT /api/auth", ChainMiddleware(s.handle(s.loginHandler), mw...))
	s.mux.HandleFunc("DELETE /api/auth", ChainMiddleware(s.handle(s.logoutHandler), mw...))

	s.mux.HandleFunc("GET /api/user/me", ChainMiddleware(s.handle(s.meHandler), mw...))
	s.mux.HandleFunc("PUT /api/user/{userId}", ChainMiddleware(s.handle(s.updateUserHandler), mw...))
	s.mux.HandleFunc("GET /api/user", ChainMiddleware(s.handle(s.listUsersHandler), mw...))

	s.mux.HandleFunc("GET /api/franchise", ChainMiddleware(s.handle(s.listFranchisesHandler), mw...))
	s.mux.HandleFunc("GET /api/franchise/{userId}", ChainMiddleware(s.handle(s.userFranchisesHandler), mw...))
	s.mux.HandleFunc("POST /api/franchise", ChainMiddleware(s.handle(s.createFranchiseHandler), mw...))
	s.mux.HandleFunc("DELETE /api/franchise/{franchiseId}", ChainMiddleware(s.handle(s.deleteFranchiseHandler), mw...))
	s.mux.HandleFunc("POST /api/franchise/{franchiseId}/store", ChainMiddleware(s.handle(s.createStoreHandler), mw...))
	s.mux.HandleFunc("DELETE /api/franchise/{franchiseId}/store/{storeId}", ChainMiddleware(s.handle(s.deleteStoreHandler), mw...))

	s.mux.HandleFunc("GET /api/order/menu", ChainMiddleware(s.handle(s.menuHandler), mw...))
	s.mux.HandleFunc("PUT /api/order/menu", ChainMiddleware(s.handle(s.addMenuItemHandler), mw...))
	s.mux.HandleFunc("GET /api/order", ChainMiddleware(s.handle(s.listOrdersHandler), mw...))
	s.mux.HandleFunc("POST /api/order", ChainMiddleware(s.handle(s.createOrderHandler), mw...))

	s.mux.HandleFunc("GET /api/docs", ChainMiddleware(s.handle(s.docsHandler), mw...))

	s.mux.HandleFunc("/", ChainMiddleware(s.handle(s.catchallHandler), mw...))
}

func (s *Server) catchallHandler(w http.ResponseWriter, r *http.Request) error {
	if r.Method == http.MethodGet && r.URL.Path == "/" {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "welcome to JWT Pizza",
			"version": s.config.App.Version,
		})
		return nil
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "unknown endpoint"})
	return nil
}
