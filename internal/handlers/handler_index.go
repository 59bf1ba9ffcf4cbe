package handlers

import (
	"net/http"

	"github.com/SscSPs/medication_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

const apiHelp = `
    ----------BASIC API ROUTES----------

    GET /api/v1/status
        Checks the status of the API

    GET /api/v1/info
        Shows this help

    ----------SESSION ROUTES----------

    POST /api/v1/sessions
        Logs in. Form or JSON body: email, password
        Sets the session cookie

    DELETE /api/v1/sessions
        Logs out the session in the cookie

    POST /api/v1/reset_password
        Issues a password reset token. Body: email

    PUT /api/v1/reset_password
        Sets a new password. Body: email, reset_token, new_password

    ----------USER ROUTES----------

    POST /api/v1/users/new
        Registers a user. JSON body: email, password, first_name?, last_name?

    GET /api/v1/users/:id
    PUT /api/v1/users/:id
    PUT /api/v1/users/:id/email
    DELETE /api/v1/users/:id
        :id is a user id or "me"

    ----------MEDICATION ROUTES----------

    GET /api/v1/meds/:id
        Lists a user's medication

    POST or PUT /api/v1/meds/:id
        Adds or replaces medication. JSON body:
        - password
        - med_data ie. {"drug_name": [dose, hours between doses, max doses?, date issued?]}

    DELETE /api/v1/meds/:id/:drug_name
        Deletes one drug. JSON body: password
`

func registerIndexRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", getStatus)
	rg.GET("/info", getInfo)
}

// getStatus godoc
// @Summary API status
// @Tags index
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /status [get]
func getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "OK"})
}

// getInfo godoc
// @Summary API help
// @Tags index
// @Produce plain
// @Success 200 {string} string "route overview"
// @Router /info [get]
func getInfo(c *gin.Context) {
	c.String(http.StatusOK, apiHelp)
}
