package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/thankimquy/FOODORDER/internal/domain"
)

var ErrInvalidID = errors.New("invalid ID format")

type CreateFoodRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

// listFoodsHandler godoc
//
//	@Summary		List menu items
//	@Tags			foods
//	@Produce		json
//	@Success		200	{array}	domain.FoodItem
//	@Router			/foods [get]
func (app *application) listFoodsHandler(w http.ResponseWriter, r *http.Request) {
	foods, err := app.store.Foods(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, foods); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createFoodHandler godoc
//
//	@Summary		Add a menu item
//	@Tags			foods
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateFoodRequest	true	"Food item"
//	@Success		201		{object}	domain.FoodItem
//	@Failure		400		{object}	map[string]string
//	@Router			/foods [post]
func (app *application) createFoodHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateFoodRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	food, err := app.store.AddFood(r.Context(), req.Name, req.Price)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, food); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteFoodHandler godoc
//
//	@Summary		Remove a menu item
//	@Description	Idempotent, orders referencing the item are kept
//	@Tags			foods
//	@Param			food_id	path	string	true	"Food ID"
//	@Success		204
//	@Router			/foods/{food_id} [delete]
func (app *application) deleteFoodHandler(w http.ResponseWriter, r *http.Request) {
	foodID := chi.URLParam(r, "food_id")
	if foodID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.store.RemoveFood(r.Context(), foodID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
