package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type memoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) listMemos(c *gin.Context) {
	memos, err := h.memos.List(c.Request.Context(), actorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]MemoResponse, len(memos))
	for i := range memos {
		resp[i] = memoToResponse(memos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createMemo(c *gin.Context) {
	var req memoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	memo, err := h.memos.Create(c.Request.Context(), actorID(c), req.Title, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, memoToResponse(*memo))
}

func (h *Handler) getMemo(c *gin.Context) {
	id, ok := memoID(c)
	if !ok {
		return
	}

	memo, err := h.memos.Get(c.Request.Context(), actorID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memoToResponse(*memo))
}

func (h *Handler) updateMemo(c *gin.Context) {
	id, ok := memoID(c)
	if !ok {
		return
	}

	var req memoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	memo, err := h.memos.Update(c.Request.Context(), actorID(c), id, req.Title, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memoToResponse(*memo))
}

func (h *Handler) deleteMemo(c *gin.Context) {
	id, ok := memoID(c)
	if !ok {
		return
	}

	if err := h.memos.Delete(c.Request.Context(), actorID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func memoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid memo id"})
		return 0, false
	}
	return id, true
}
