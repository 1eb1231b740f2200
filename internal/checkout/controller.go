package checkout

import (
	"errors"
	"net/http"

	"parkpass/internal/shared/utils/response"
	"parkpass/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// CreateSession handles POST /api/v1/checkout/sessions
func (c *Controller) CreateSession(ctx *gin.Context) {
	sess, token, err := c.service.CreateSession(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Checkout session created", CreateSessionResponse{
		Session: sess.ToResponse(),
		Token:   token,
	}, nil)
}

// GetSession handles GET /api/v1/checkout/session
func (c *Controller) GetSession(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	sess, err := c.service.GetSession(ctx.Request.Context(), sessionID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Checkout session retrieved", sess.ToResponse(), nil)
}

// SetTickets handles PUT /api/v1/checkout/session/tickets
func (c *Controller) SetTickets(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req SetTicketsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	selections := make([]TicketSelection, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		selections = append(selections, TicketSelection{TicketTypeID: t.TicketTypeID, Quantity: t.Quantity})
	}

	sess, staleIDs, err := c.service.SetTickets(ctx.Request.Context(), sessionID, selections)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket selection updated", SetTicketsResponse{
		Session:            sess.ToResponse(),
		StaleTicketTypeIDs: staleIDs,
	}, nil)
}

// SetVisitDate handles PUT /api/v1/checkout/session/date
func (c *Controller) SetVisitDate(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req SetVisitDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	sess, err := c.service.SetVisitDate(ctx.Request.Context(), sessionID, req.VisitDate)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Visit date updated", sess.ToResponse(), nil)
}

// SetTerms handles PUT /api/v1/checkout/session/terms
func (c *Controller) SetTerms(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req SetTermsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	sess, err := c.service.SetAcceptedTerms(ctx.Request.Context(), sessionID, *req.AcceptedTerms)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Terms acceptance updated", sess.ToResponse(), nil)
}

// SetCustomerInfo handles PUT /api/v1/checkout/session/customer.
// A JSON null body clears the field.
func (c *Controller) SetCustomerInfo(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req *SetCustomerInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	var info *CustomerInfo
	if req != nil {
		if err := c.validator.Struct(req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
			return
		}
		info = &CustomerInfo{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		}
	}

	sess, err := c.service.SetCustomerInfo(ctx.Request.Context(), sessionID, info)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Customer info updated", sess.ToResponse(), nil)
}

// SetCustomerAddress handles PUT /api/v1/checkout/session/address.
// A JSON null body clears the field.
func (c *Controller) SetCustomerAddress(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req *SetCustomerAddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	var addr *CustomerAddress
	if req != nil {
		if err := c.validator.Struct(req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
			return
		}
		addr = &CustomerAddress{
			Address: req.Address,
			City:    req.City,
			ZipCode: req.ZipCode,
			Country: req.Country,
		}
	}

	sess, err := c.service.SetCustomerAddress(ctx.Request.Context(), sessionID, addr)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Customer address updated", sess.ToResponse(), nil)
}

// SetPaymentInfo handles PUT /api/v1/checkout/session/payment.
// A JSON null body clears the field.
func (c *Controller) SetPaymentInfo(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req *SetPaymentInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	var info *PaymentInfo
	if req != nil {
		if err := c.validator.Struct(req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
			return
		}
		info = &PaymentInfo{
			CardNumber: req.CardNumber,
			Month:      req.Month,
			Year:       req.Year,
			CVV:        req.CVV,
		}
	}

	sess, err := c.service.SetPaymentInfo(ctx.Request.Context(), sessionID, info)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment info updated", sess.ToResponse(), nil)
}

// Advance handles POST /api/v1/checkout/session/advance
func (c *Controller) Advance(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	sess, err := c.service.Advance(ctx.Request.Context(), sessionID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Advanced to next step", sess.ToResponse(), nil)
}

// Back handles POST /api/v1/checkout/session/back
func (c *Controller) Back(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	sess, err := c.service.Back(ctx.Request.Context(), sessionID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Moved to previous step", sess.ToResponse(), nil)
}

// Submit handles POST /api/v1/checkout/session/submit
func (c *Controller) Submit(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	sess, err := c.service.Submit(ctx.Request.Context(), sessionID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation confirmed", sess.ToResponse(), nil)
}

// Reset handles POST /api/v1/checkout/session/reset
func (c *Controller) Reset(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	sess, err := c.service.Reset(ctx.Request.Context(), sessionID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Checkout session reset", sess.ToResponse(), nil)
}

// sessionID pulls the session ID placed into context by the session middleware
func (c *Controller) sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	idValue, exists := ctx.Get("session_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Session token required", nil, nil)
		return uuid.Nil, false
	}

	idStr, ok := idValue.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid session ID format", nil, nil)
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(idStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, nil)
		return uuid.Nil, false
	}
	return sessionID, true
}

// respondError maps service errors to HTTP responses
func (c *Controller) respondError(ctx *gin.Context, err error) {
	var validationErr *ValidationError
	var submissionErr *SubmissionError

	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Checkout session not found or expired", nil, nil)
	case errors.Is(err, ErrSessionTerminal):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Session already confirmed; reset to start a new booking", nil, nil)
	case errors.Is(err, ErrResetRequired):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Session is complete; reset to start a new booking", nil, nil)
	case errors.Is(err, ErrSubmitInFlight):
		response.RespondJSON(ctx, "error", http.StatusConflict, "A submission is already in progress for this session", nil, nil)
	case errors.As(err, &validationErr):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Validation failed", nil, gin.H{
			"field":  validationErr.Field,
			"reason": validationErr.Reason,
		})
	case errors.As(err, &submissionErr):
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Reservation submission failed", nil, gin.H{
			"details": submissionErr.Err.Error(),
		})
	default:
		logger.GetDefault().LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}
