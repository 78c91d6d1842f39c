package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact handles POST /contact. Messages are not persisted; they are
// written to the request log and acknowledged.
func Contact(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and message are required"})
	}
	c.Logger().Infof("contact message from %s (%s): %s", req.Name, req.Email, req.Message)
	return c.JSON(http.StatusOK, echo.Map{"message": "Message received successfully"})
}
