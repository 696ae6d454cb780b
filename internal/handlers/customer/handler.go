package customer

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roombook/infras/otel"
	"roombook/internal/domains/customer/service"
	"roombook/shared/constant"
	"roombook/shared/failure"
	"roombook/transport/http/response"
)

type Handler struct {
	service service.Customer
	otel    otel.Otel
}

func New(service service.Customer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/customers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCustomers)
		routerGroup.Get("/{name}/bookings", handler.GetCustomerHistory)
	})
}

// GetCustomers lists every customer record with the bookings made under its name.
// @Summary Get all customers with their bookings
// @Description One entry per booking made, names are not merged.
// @Tags Customer
// @Produce json
// @Success 200 {object} response.Data[[]dto.CustomerBookingsResponse] "List of customers"
// @Failure 500 {object} response.Error
// @Router /v1/customers [get]
func (handler *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	customers, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, customers)
}

// GetCustomerHistory lists the bookings of one customer.
// @Summary Get the booking history of a customer
// @Description Unknown customers get an empty booking list.
// @Tags Customer
// @Produce json
// @Param name path string true "Customer name"
// @Success 200 {object} response.Data[dto.CustomerHistoryResponse] "Booking history"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers/{name}/bookings [get]
func (handler *Handler) GetCustomerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerHistory")
	defer scope.End()

	name := chi.URLParam(r, constant.RequestParamName)

	// chi matches on RawPath when it is set, leaving the segment escaped.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			response.WithError(w, failure.BadRequest(err))

			return
		}

		name = unescaped
	}

	scope.SetAttribute("customerName", name)

	history, err := handler.service.History(ctx, name)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, history)
}
