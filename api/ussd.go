package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// USSD serves the USSD gateway callback. The gateway posts form-encoded
// session state; the response body is plain text, prefixed CON to keep the
// session open or END to close it.
func (a Api) USSD(c *gin.Context) {
	phoneNumber := c.PostForm("phoneNumber")
	text := c.PostForm("text")

	logrus.Infof("ussd input %q from %s", text, phoneNumber)

	var response string
	switch text {
	case "":
		response = "CON What do you want to do \n1. Get account balance \n2. Initiate transfer"
	case "1":
		response = a.ussdAccountBalance(c, phoneNumber)
	case "2":
		response = "END Bye!"
	default:
		response = "END Invalid choice selected!"
	}

	c.String(http.StatusOK, response)
}

// ussdAccountBalance resolves the caller's account by phone number. The
// gateway sends numbers with a leading plus which is not stored.
func (a Api) ussdAccountBalance(c *gin.Context, phoneNumber string) string {
	parsed := phoneNumber
	if len(parsed) > 0 && parsed[0] == '+' {
		parsed = parsed[1:]
	}

	account, err := a.bank.GetAccountByPhone(c.Request.Context(), parsed)
	if err != nil {
		logrus.Errorf("ussd account lookup failed for %s: %v", phoneNumber, err)
		return fmt.Sprintf("END Account not found for this phone number: %s", phoneNumber)
	}
	return fmt.Sprintf("END Available balance is %s", account.AvailableBalance)
}
