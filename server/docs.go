package server

import "net/http"

// endpointDoc describes one route for the self-documentation endpoint.
type endpointDoc struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	RequiresAuth bool   `json:"requiresAuth"`
	Description  string `json:"description"`
}

var endpointDocs = []endpointDoc{
	{Method: "POST", Path: "/api/auth", RequiresAuth: false, Description: "Register a new user"},
	{Method: "PUT", Path: "/api/auth", RequiresAuth: false, Description: "Login existing user"},
	{Method: "DELETE", Path: "/api/auth", RequiresAuth: true, Description: "Logout a user"},
	{Method: "GET", Path: "/api/user/me", RequiresAuth: true, Description: "Get authenticated user"},
	{Method: "PUT", Path: "/api/user/{userId}", RequiresAuth: true, Description: "Update user"},
	{Method: "GET", Path: "/api/user", RequiresAuth: true, Description: "List users"},
	{Method: "GET", Path: "/api/franchise", RequiresAuth: false, Description: "List all the franchises"},
	{Method: "GET", Path: "/api/franchise/{userId}", RequiresAuth: true, Description: "List a user's franchises"},
	{Method: "POST", Path: "/api/franchise", RequiresAuth: true, Description: "Create a new franchise"},
	{Method: "DELETE", Path: "/api/franchise/{franchiseId}", RequiresAuth: false, Description: "Delete a franchise"},
	{Method: "POST", Path: "/api/franchise/{franchiseId}/store", RequiresAuth: true, Description: "Create a new franchise store"},
	{Method: "DELETE", Path: "/api/franchise/{franchiseId}/store/{storeId}", RequiresAuth: true, Description: "Delete a store"},
	{Method: "GET", Path: "/api/order/menu", RequiresAuth: false, Description: "Get the pizza menu"},
	{Method: "PUT", Path: "/api/order/menu", RequiresAuth: true, Description: "Add an item to the menu"},
	{Method: "GET", Path: "/api/order", RequiresAuth: true, Description: "Get the orders for the authenticated user"},
	{Method: "POST", Path: "/api/order", RequiresAuth: true, Description: "Create an order for the authenticated user"},
}

// docsHandler serves a machine-readable description of the API.
func (s *Server) docsHandler(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]any{
		"version":   s.config.App.Version,
		"endpoints": endpointDocs,
		"config": map[string]any{
			"factory":  s.config.Factory.URL,
			"database": s.config.Database.Path,
		},
	})
	return nil
}
