package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/thankimquy/FOODORDER/internal/domain"
)

type SaveOrderRequest struct {
	CustomerName string         `json:"customer_name" validate:"required"`
	Items        map[string]int `json:"items" validate:"required"`
}

// listOrdersHandler godoc
//
//	@Summary		List orders
//	@Tags			orders
//	@Produce		json
//	@Success		200	{array}	domain.Order
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := app.store.Orders(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createOrderHandler godoc
//
//	@Summary		Place an order
//	@Description	Saves a draft quantity map as an order, zero quantities dropped
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SaveOrderRequest	true	"Order draft"
//	@Success		201		{object}	domain.Order
//	@Failure		400		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req SaveOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.store.AddOrder(r.Context(), req.CustomerName, req.Items)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderHandler godoc
//
//	@Summary		Edit an order
//	@Description	Replaces customer name and lines, keeps id and order date
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string				true	"Order ID"
//	@Param			request		body		SaveOrderRequest	true	"Order draft"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id} [put]
func (app *application) updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req SaveOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.store.UpdateOrder(r.Context(), orderID, req.CustomerName, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			app.notFoundError(w, r, err)
		case errors.Is(err, domain.ErrValidation):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteOrderHandler godoc
//
//	@Summary		Remove an order
//	@Tags			orders
//	@Param			order_id	path	string	true	"Order ID"
//	@Success		204
//	@Router			/orders/{order_id} [delete]
func (app *application) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.store.RemoveOrder(r.Context(), orderID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// statsHandler godoc
//
//	@Summary		Dashboard statistics
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	domain.Stats
//	@Router			/stats [get]
func (app *application) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.store.Stats(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}
