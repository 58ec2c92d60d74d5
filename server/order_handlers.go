package server

import (
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/jwtpizza/pizza-service/authz"
	"github.com/jwtpizza/pizza-service/order"
)

// menuHandler returns the pizza menu. No authentication required.
func (s *Server) menuHandler(w http.ResponseWriter, r *http.Request) error {
	menu, err := s.repos.Orders.Menu(r.Context())
	if err != nil {
		return errors.Wrap(err, "[menuHandler] load menu")
	}

	writeJSON(w, http.StatusOK, menu)
	return nil
}

// addMenuItemHandler adds an item to the menu and returns the updated menu.
func (s *Server) addMenuItemHandler(w http.ResponseWriter, r *http.Request) error {
	if err := authz.Decide(authUser(r), authz.OpEditMenu, authz.Facts{}); err != nil {
		if errors.Is(err, authz.ForbiddenErr) {
			return statusError(http.StatusForbidden, "unable to add menu item")
		}
		return err
	}

	var req order.MenuItem
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	if _, err := s.repos.Orders.AddMenuItem(r.Context(), &req); err != nil {
		return errors.Wrap(err, "[addMenuItemHandler] add menu item")
	}

	menu, err := s.repos.Orders.Menu(r.Context())
	if err != nil {
		return errors.Wrap(err, "[addMenuItemHandler] load menu")
	}

	writeJSON(w, http.StatusOK, menu)
	return nil
}

// listOrdersHandler returns a page of the caller's own order history. The
// diner scope comes from the session, never from the request.
func (s *Server) listOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	caller := authUser(r)
	if err := authz.Decide(caller, authz.OpListOrders, authz.Facts{}); err != nil {
		return err
	}

	page := queryInt(r, "page", 0)
	orders, err := s.repos.Orders.OrdersForDiner(r.Context(), caller.ID, page)
	if err != nil {
		return errors.Wrap(err, "[listOrdersHandler] load orders")
	}

	writeJSON(w, http.StatusOK, orders)
	return nil
}

// createOrderHandler persists the caller's order and sends it to the factory
// for fulfillment. A factory rejection leaves the persisted order in place
// and reports the failure with the factory's chaos report link.
func (s *Server) createOrderHandler(w http.ResponseWriter, r *http.Request) error {
	caller := authUser(r)
	if err := authz.Decide(caller, authz.OpCreateOrder, authz.Facts{}); err != nil {
		return err
	}

	var req order.Order
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	stored, err := s.repos.Orders.AddDinerOrder(r.Context(), caller.ID, &req)
	if err != nil {
		return errors.Wrap(err, "[createOrderHandler] store order")
	}

	startTime := time.Now()
	fulfillment, err := s.factory.Fulfill(r.Context(), order.Diner{ID: caller.ID, Name: caller.Name, Email: caller.Email}, stored)
	if s.metrics != nil {
		s.metrics.TrackPizzaPurchase(err == nil, time.Since(startTime), stored.Total())
	}
	if err != nil {
		if errors.Is(err, order.FulfillFailedErr) {
			response := map[string]any{"message": order.FulfillFailedErr.Error()}
			if fulfillment != nil {
				response["followLinkToEndChaos"] = fulfillment.ReportURL
			}
			writeJSON(w, http.StatusInternalServerError, response)
			return nil
		}
		return errors.Wrap(err, "[createOrderHandler] fulfill order")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"order":                stored,
		"followLinkToEndChaos": fulfillment.ReportURL,
		"jwt":                  fulfillment.JWT,
	})
	return nil
}
