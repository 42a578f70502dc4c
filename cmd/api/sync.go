package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thankimquy/FOODORDER/internal/domain"
)

const maxImportSize = 10 << 20 // 10mb

type ImportPreviewResponse struct {
	ConfirmRequired bool `json:"confirm_required"`
	Foods           int  `json:"foods"`
	Orders          int  `json:"orders"`
}

type ImportResultResponse struct {
	Replaced bool `json:"replaced"`
	Foods    int  `json:"foods"`
	Orders   int  `json:"orders"`
}

// exportExcelHandler godoc
//
//	@Summary		Export the store as an xlsx workbook
//	@Tags			sync
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200
//	@Router			/export/excel [get]
func (app *application) exportExcelHandler(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("QuanLyDatMon_%s.xlsx", time.Now().Format("2-1-2006"))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := app.sync.ExportExcel(r.Context(), w); err != nil {
		app.logger.Errorw("excel export failed", "error", err)
	}
}

// importExcelHandler godoc
//
//	@Summary		Import an xlsx workbook, replacing the whole store
//	@Description	Without confirm=true only a preview is returned and the store is untouched
//	@Tags			sync
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Workbook"
//	@Param			confirm	query		bool	false	"Apply the destructive replace"
//	@Success		200		{object}	ImportResultResponse
//	@Failure		400		{object}	map[string]string
//	@Router			/import/excel [post]
func (app *application) importExcelHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	confirm := r.URL.Query().Get("confirm") == "true"

	snap, applied, err := app.sync.ImportExcel(r.Context(), file, confirm)
	if err != nil {
		if errors.Is(err, domain.ErrImport) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.respondImport(w, r, snap, applied)
}

// exportSnapshotHandler godoc
//
//	@Summary		Export the store as a JSON snapshot
//	@Tags			sync
//	@Produce		json
//	@Success		200
//	@Router			/export/snapshot [get]
func (app *application) exportSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := app.sync.ExportSnapshot(r.Context(), w); err != nil {
		app.logger.Errorw("snapshot export failed", "error", err)
	}
}

// importSnapshotHandler godoc
//
//	@Summary		Import a JSON snapshot, replacing the whole store
//	@Description	Without confirm=true only a preview is returned and the store is untouched
//	@Tags			sync
//	@Accept			json
//	@Produce		json
//	@Param			confirm	query		bool	false	"Apply the destructive replace"
//	@Success		200		{object}	ImportResultResponse
//	@Failure		400		{object}	map[string]string
//	@Router			/import/snapshot [post]
func (app *application) importSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	confirm := r.URL.Query().Get("confirm") == "true"

	snap, applied, err := app.sync.ImportSnapshot(r.Context(), r.Body, confirm)
	if err != nil {
		if errors.Is(err, domain.ErrImport) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.respondImport(w, r, snap, applied)
}

func (app *application) respondImport(w http.ResponseWriter, r *http.Request, snap domain.Snapshot, applied bool) {
	if !applied {
		preview := ImportPreviewResponse{
			ConfirmRequired: true,
			Foods:           len(snap.Foods),
			Orders:          len(snap.Orders),
		}
		if err := app.jsonRespone(w, http.StatusOK, preview); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	result := ImportResultResponse{
		Replaced: true,
		Foods:    len(snap.Foods),
		Orders:   len(snap.Orders),
	}
	if err := app.jsonRespone(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}
