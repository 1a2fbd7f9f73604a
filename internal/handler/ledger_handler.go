package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dafibh/gigledger/ledger-backend/internal/domain"
	"github.com/dafibh/gigledger/ledger-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// LedgerHandler handles earnings ledger HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// AmountInput accepts an amount sent either as a JSON string or a JSON number.
// null and a missing field both decode to the empty string.
type AmountInput string

// UnmarshalJSON implements json.Unmarshaler
func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AmountInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = AmountInput(n.String())
	return nil
}

// SetPlatformEarningRequest represents the platform earnings request body
type SetPlatformEarningRequest struct {
	Amount AmountInput `json:"amount" swaggertype:"string" example:"850"`
}

// SetExpenseRequest represents the expense request body
type SetExpenseRequest struct {
	Amount AmountInput `json:"amount" swaggertype:"string" example:"180.5"`
	Note   *string     `json:"note,omitempty"`
}

// SetGoalRequest represents the monthly goal request body
type SetGoalRequest struct {
	Goal AmountInput `json:"goal" swaggertype:"string" example:"20000"`
}

// LedgerResponse represents the ledger summary in API responses.
// Websocket events carry the same shape as their payload.
type LedgerResponse = domain.LedgerView

// PlatformShareResponse represents one slice of the earnings distribution
type PlatformShareResponse struct {
	Platform string `json:"platform"`
	Amount   string `json:"amount"`
	Share    string `json:"share"`
}

// DistributionResponse represents the per-platform chart data
type DistributionResponse struct {
	MonthlyEarnings string                  `json:"monthlyEarnings"`
	Platforms       []PlatformShareResponse `json:"platforms"`
}

// LoadResponse represents the result of POST /ledger/load
type LoadResponse struct {
	Found  bool           `json:"found"`
	Ledger LedgerResponse `json:"ledger"`
}

// SaveResponse represents the result of POST /ledger/save
type SaveResponse struct {
	Saved  bool           `json:"saved"`
	Ledger LedgerResponse `json:"ledger"`
}

// GetLedger godoc
// @Summary Get the ledger
// @Description Current goal, earnings, expenses and derived figures
// @Tags ledger
// @Produce json
// @Success 200 {object} LedgerResponse
// @Router /ledger [get]
func (h *LedgerHandler) GetLedger(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ledgerService.Summary().View())
}

// GetDistribution godoc
// @Summary Get the earnings distribution
// @Description Per-platform amounts and share of monthly earnings, in display order
// @Tags ledger
// @Produce json
// @Success 200 {object} DistributionResponse
// @Router /ledger/distribution [get]
func (h *LedgerHandler) GetDistribution(c echo.Context) error {
	summary := h.ledgerService.Summary()
	shares := h.ledgerService.Distribution()

	platforms := make([]PlatformShareResponse, len(shares))
	for i, s := range shares {
		platforms[i] = PlatformShareResponse{
			Platform: string(s.Platform),
			Amount:   s.Amount.StringFixed(2),
			Share:    s.Share.StringFixed(2),
		}
	}

	return c.JSON(http.StatusOK, DistributionResponse{
		MonthlyEarnings: summary.MonthlyEarnings.StringFixed(2),
		Platforms:       platforms,
	})
}

// SetPlatformEarning godoc
// @Summary Set a platform's earnings
// @Tags ledger
// @Accept json
// @Produce json
// @Param platform path string true "Platform name" Enums(Zomato, Swiggy, Uber, Ola)
// @Param request body SetPlatformEarningRequest true "Amount"
// @Success 200 {object} LedgerResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /ledger/platforms/{platform} [put]
func (h *LedgerHandler) SetPlatformEarning(c echo.Context) error {
	platform := c.Param("platform")

	var req SetPlatformEarningRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	summary, err := h.ledgerService.SetPlatformEarning(platform, string(req.Amount))
	if err != nil {
		return h.mutationError(c, err, "amount")
	}

	log.Info().Str("platform", platform).Str("monthly_earnings", summary.MonthlyEarnings.String()).Msg("Platform earnings updated")

	return c.JSON(http.StatusOK, summary.View())
}

// SetExpense godoc
// @Summary Set an expense
// @Description A note is accepted only for the Other category
// @Tags ledger
// @Accept json
// @Produce json
// @Param category path string true "Expense category" Enums(Petrol, Bike Repair, Other)
// @Param request body SetExpenseRequest true "Amount and optional note"
// @Success 200 {object} LedgerResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /ledger/expenses/{category} [put]
func (h *LedgerHandler) SetExpense(c echo.Context) error {
	category := c.Param("category")

	var req SetExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	summary, err := h.ledgerService.SetExpense(category, string(req.Amount), req.Note)
	if err != nil {
		return h.mutationError(c, err, "amount")
	}

	log.Info().Str("category", category).Str("total_expenses", summary.TotalExpenses.String()).Msg("Expense updated")

	return c.JSON(http.StatusOK, summary.View())
}

// SetGoal godoc
// @Summary Set the monthly goal
// @Description The goal must be a positive amount; anything else is rejected and the previous goal kept
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body SetGoalRequest true "Goal"
// @Success 200 {object} LedgerResponse
// @Failure 400 {object} ProblemDetails
// @Router /ledger/goal [put]
func (h *LedgerHandler) SetGoal(c echo.Context) error {
	var req SetGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	summary, err := h.ledgerService.SetMonthlyGoal(string(req.Goal))
	if err != nil {
		return h.mutationError(c, err, "goal")
	}

	log.Info().Str("goal", summary.MonthlyGoal.String()).Msg("Monthly goal updated")

	return c.JSON(http.StatusOK, summary.View())
}

// Save godoc
// @Summary Save the ledger
// @Description Writes the ledger to storage. On failure the in-memory ledger is unchanged and the request can be retried.
// @Tags ledger
// @Produce json
// @Success 200 {object} SaveResponse
// @Failure 503 {object} ProblemDetails
// @Router /ledger/save [post]
func (h *LedgerHandler) Save(c echo.Context) error {
	saved, err := h.ledgerService.Save(c.Request().Context())
	if err != nil {
		return h.persistenceError(c, err, "Failed to save ledger")
	}

	return c.JSON(http.StatusOK, SaveResponse{
		Saved:  true,
		Ledger: saved.View(),
	})
}

// Load godoc
// @Summary Load the ledger
// @Description Replaces the in-memory ledger with the stored one. found is false when nothing has been saved yet.
// @Tags ledger
// @Produce json
// @Success 200 {object} LoadResponse
// @Failure 422 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /ledger/load [post]
func (h *LedgerHandler) Load(c echo.Context) error {
	summary, found, err := h.ledgerService.Load(c.Request().Context())
	if err != nil {
		return h.persistenceError(c, err, "Failed to load ledger")
	}

	return c.JSON(http.StatusOK, LoadResponse{
		Found:  found,
		Ledger: summary.View(),
	})
}

func (h *LedgerHandler) mutationError(c echo.Context, err error, amountField string) error {
	switch {
	case errors.Is(err, domain.ErrUnknownPlatform):
		return NewNotFoundError(c, "Unknown platform")
	case errors.Is(err, domain.ErrUnknownExpenseCategory):
		return NewNotFoundError(c, "Unknown expense category")
	case errors.Is(err, domain.ErrInvalidGoal):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "goal", Message: "Goal must be a positive number"},
		})
	case errors.Is(err, domain.ErrNegativeAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: amountField, Message: "Must not be negative"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: amountField, Message: "Must be a valid decimal number"},
		})
	case errors.Is(err, domain.ErrNoteTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "note", Message: "Note must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "note", Message: "A note is only accepted for the Other category"},
		})
	}

	log.Error().Err(err).Msg("Failed to update ledger")
	return NewInternalError(c, "Failed to update ledger")
}

func (h *LedgerHandler) persistenceError(c echo.Context, err error, detail string) error {
	switch {
	case errors.Is(err, domain.ErrStorage):
		return NewServiceUnavailableError(c, detail)
	case errors.Is(err, domain.ErrCorruptRecord):
		return NewUnprocessableError(c, "Stored ledger could not be read")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// gave up waiting for the storage slot; nothing was read or written
		log.Debug().Err(err).Msg(detail)
		return NewServiceUnavailableError(c, detail)
	}

	log.Error().Err(err).Msg(detail)
	return NewInternalError(c, detail)
}
