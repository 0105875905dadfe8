package utilities

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"GradLinkUp-backend/internal/model"
)

// SimulateAPICall call handlerFunc directly with a JSON body, bypassing router and middleware.
// A nil body send an empty request body. Each prepare func run on the context before the handler.
func SimulateAPICall(
	handlerFunc func(*gin.Context),
	route string,
	method string,
	body interface{},
	prepare ...func(*gin.Context),
) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		payload = b
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(method, route, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	for _, p := range prepare {
		p(c)
	}
	handlerFunc(c)

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		return rec, nil, err
	}
	return rec, resp, nil
}

// AsUser put user into context the way RequireAuth does
func AsUser(user model.User) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(ContextUserKey, user)
	}
}
