package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/api/metrics"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// PayPalInfo is the client-side provider configuration exposed to the
// frontend checkout widget. No secrets, only publishable values.
type PayPalInfo struct {
	ClientID      string `json:"client_id"`
	BusinessEmail string `json:"business_email"`
	Mode          string `json:"mode"`
}

// PaymentHandler handles the user-facing payment surface: provider config,
// subscription checkout, capture callback, history.
type PaymentHandler struct {
	service ports.PaymentService
	paypal  PayPalInfo
}

func NewPaymentHandler(service ports.PaymentService, paypal PayPalInfo) *PaymentHandler {
	return &PaymentHandler{service: service, paypal: paypal}
}

type subscribeRequest struct {
	PackageID int64 `json:"package_id" validate:"required,gt=0"`
}

type captureRequest struct {
	PaymentID     int64  `json:"payment_id"     validate:"required,gt=0"`
	TransactionID string `json:"transaction_id" validate:"required"`
	Status        string `json:"status"         validate:"required,oneof=completed failed"`
	Amount        string `json:"amount"`
}

// Config returns the publishable provider configuration.
//
// @Summary      PayPal client configuration
// @Tags         payments
// @Produce      json
// @Success      200  {object}  PayPalInfo
// @Router       /v1/payments/config [get]
func (h *PaymentHandler) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, h.paypal)
}

// Subscribe opens a pending payment for a package.
//
// @Summary      Start a subscription purchase
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      subscribeRequest  true  "Package to purchase"
// @Success      201   {object}  ports.SubscribeResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/payments/subscribe [post]
func (h *PaymentHandler) Subscribe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Subscribe(c.Request().Context(), user.ID, req.PackageID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

// Capture applies the provider outcome for a payment. The endpoint is
// called back by the payment provider, not by a logged-in browser, so it
// carries no identity; replayed deliveries are absorbed by the
// transaction-id guard inside the service.
//
// @Summary      Capture a payment outcome
// @Tags         payments
// @Accept       json
// @Param        body  body  captureRequest  true  "Provider outcome"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Router       /v1/payments/capture [post]
func (h *PaymentHandler) Capture(c echo.Context) error {
	var req captureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Capture(c.Request().Context(), ports.CaptureInput{
		PaymentID:     req.PaymentID,
		TransactionID: req.TransactionID,
		Status:        req.Status,
		Amount:        req.Amount,
	}); err != nil {
		metrics.PaymentCapturesTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.PaymentCapturesTotal.WithLabelValues("applied").Inc()
	return c.NoContent(http.StatusNoContent)
}

// History lists the caller's payments.
//
// @Summary      My payment history
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Payment
// @Failure      401  {object}  map[string]string
// @Router       /v1/payments/history [get]
func (h *PaymentHandler) History(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	payments, err := h.service.History(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
