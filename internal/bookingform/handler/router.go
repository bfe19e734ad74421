package handler

import "github.com/julienschmidt/httprouter"

const basePath = "/api/v1/booking-form"

func (h *BookingFormHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(basePath+"/validate", h.Validate)
	router.POST(basePath+"/submit", h.Submit)
	router.POST(basePath+"/end-date", h.AdjustEndDate)
	router.GET(basePath+"/controls", h.NewBookingControls)
	router.GET(basePath+"/controls/:id", h.Controls)
}
