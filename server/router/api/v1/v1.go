// Package v1 exposes the chat pipeline over HTTP. The single chat
// endpoint answers with newline-delimited JSON events, flushed as the
// phases of the response are produced.
package v1

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prem-acharya/ai-agent-backend/ai/session"
	"github.com/prem-acharya/ai-agent-backend/internal/profile"
)

const contentTypeNDJSON = "application/x-ndjson"

type APIV1Service struct {
	Profile *profile.Profile
	Session *session.Session
}

func NewAPIV1Service(instanceProfile *profile.Profile, chatSession *session.Session) *APIV1Service {
	return &APIV1Service{
		Profile: instanceProfile,
		Session: chatSession,
	}
}

func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/chat", s.Chat)
}

// Chat runs one conversational turn. The request body carries the
// utterance and per-turn switches; the response is a stream of
// line-delimited JSON events ordered by phase.
func (s *APIV1Service) Chat(c echo.Context) error {
	var req session.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, contentTypeNDJSON)
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(resp)
	for event := range s.Session.Respond(c.Request().Context(), req) {
		if err := enc.Encode(event); err != nil {
			// The client went away; the session drains itself when the
			// request context is canceled.
			return nil
		}
		resp.Flush()
	}
	return nil
}
