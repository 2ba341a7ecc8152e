package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mergington/activities-board/internal/service"
)

// sessionCookie carries the board session id; one session per page load.
const sessionCookie = "board_session"

type BoardHandler struct {
	boardService service.BoardService
}

func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// ShowBoard renders the board for the caller's session, creating a fresh
// session (one backend fetch) when none exists yet.
func (h *BoardHandler) ShowBoard(c *gin.Context) {
	id, ok := h.sessionID(c)

	var view *service.BoardView
	var err error
	if ok {
		view, err = h.boardService.Snapshot(id)
	}
	if !ok || err != nil {
		id = h.boardService.CreateSession(c.Request.Context())
		c.SetCookie(sessionCookie, id.String(), 0, "/", "", false, true)

		view, err = h.boardService.Snapshot(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.HTML(http.StatusOK, "board.html", view)
}

// ReloadBoard re-fetches the activity collection for the current session,
// the equivalent of reloading the page.
func (h *BoardHandler) ReloadBoard(c *gin.Context) {
	if id, ok := h.sessionID(c); ok {
		_ = h.boardService.Reload(c.Request.Context(), id)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *BoardHandler) SubmitSignup(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var req service.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Outcome lands in the session's message area, not in this response.
	_ = h.boardService.SubmitSignup(c.Request.Context(), id, &req)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *BoardHandler) Unregister(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	req := service.UnregisterRequest{
		Activity: c.Param("name"),
		Email:    c.PostForm("email"),
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	_ = h.boardService.RemoveParticipant(c.Request.Context(), id, &req)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *BoardHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
