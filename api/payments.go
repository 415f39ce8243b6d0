package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	model2 "github.com/OpenG2P/openg2p-g2p-bridge-example-bank/api/model"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
)

// InitiatePayments accepts a batch of pre-authorized payment instructions.
// The response carries the batch reference; settlement happens on the
// workers.
func (a Api) InitiatePayments(c *gin.Context) {
	var req model2.InitiatePayments
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.ValidateInitiatePayments(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	batch, err := a.bank.InitiatePaymentBatch(c.Request.Context(), req.ToInstructions())
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, batch)
}
