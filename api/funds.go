package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	model2 "github.com/OpenG2P/openg2p-g2p-bridge-example-bank/api/model"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
)

func (a Api) BlockFunds(c *gin.Context) {
	var req model2.BlockFunds
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.ValidateBlockFunds(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.bank.BlockFunds(c.Request.Context(), req.AccountNumber, req.Currency, req.Amount)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) CheckFunds(c *gin.Context) {
	var req model2.CheckFunds
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.ValidateCheckFunds(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	available, err := a.bank.CheckFundsAvailability(c.Request.Context(), req.AccountNumber, req.Amount)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_number": req.AccountNumber, "funds_available": available})
}

func (a Api) GetFundBlock(c *gin.Context) {
	reference, passed := c.Params.Get("reference")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference is required. pass it in the route /:reference"})
		return
	}

	resp, err := a.bank.GetFundBlock(c.Request.Context(), reference)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
