package http

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agriguard/agriguard/internal/domain/chat"
)

type chatMessageRequest struct {
	Message     string   `json:"message" binding:"required"`
	SessionID   string   `json:"session_id"`
	ImageBase64 string   `json:"image_base64"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	CropType    string   `json:"crop_type"`
	Language    string   `json:"language"`
}

type ipmChatRequest struct {
	SessionID string   `json:"session_id" binding:"required"`
	Disease   string   `json:"disease" binding:"required"`
	Crop      string   `json:"crop"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// SendMessage handles one conversational turn.
func (h *Handler) SendMessage(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, errMessage(err), err))
		return
	}
	h.runChatTurn(c, req)
}

// SendMessageWithUpload handles a turn that includes a multipart image.
func (h *Handler) SendMessageWithUpload(c *gin.Context) {
	message := c.PostForm("message")
	if message == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "message is required", nil))
		return
	}
	data, mimeType, ok := h.readUpload(c)
	if !ok {
		return
	}
	h.archiveUpload(c, "chat", data, mimeType)

	req := chatMessageRequest{
		Message:     message,
		SessionID:   c.PostForm("session_id"),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		CropType:    c.PostForm("crop_type"),
		Language:    c.PostForm("language"),
	}
	if lat, err := strconv.ParseFloat(c.PostForm("latitude"), 64); err == nil {
		req.Latitude = &lat
	}
	if lon, err := strconv.ParseFloat(c.PostForm("longitude"), 64); err == nil {
		req.Longitude = &lon
	}
	h.runChatTurn(c, req)
}

func (h *Handler) runChatTurn(c *gin.Context, req chatMessageRequest) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := h.chatSvc.Chat(c.Request.Context(), chat.TurnInput{
		Message:             req.Message,
		SessionID:           sessionID,
		ImageBase64:         req.ImageBase64,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		CropType:            req.CropType,
		LanguageInstruction: languageInstruction(req.Language),
	})
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, errMessage(err), err))
		return
	}

	respondSuccess(c, gin.H{
		"session_id":        sessionID,
		"message":           reply.Message,
		"analysis":          reply.Analysis,
		"suggestions":       reply.Suggestions,
		"actions_available": reply.ActionsAvailable,
	})
}

// IPMInChat delivers an IPM strategy inside a conversation.
func (h *Handler) IPMInChat(c *gin.Context) {
	var req ipmChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, errMessage(err), err))
		return
	}
	crop := req.Crop
	if crop == "" {
		crop = "general"
	}

	reply := h.chatSvc.IPMForConversation(c.Request.Context(), req.Disease, crop, req.Latitude, req.Longitude)
	respondSuccess(c, reply)
}

// ClearSession drops a session's conversation history.
func (h *Handler) ClearSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if err := h.chatSvc.ClearHistory(c.Request.Context(), sessionID); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, errMessage(err), err))
		return
	}
	respondSuccess(c, gin.H{"message": "Session cleared"})
}

// SessionInfo reports a session's message count.
func (h *Handler) SessionInfo(c *gin.Context) {
	sessionID := c.Param("session_id")
	info, err := h.chatSvc.Session(c.Request.Context(), sessionID)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, errMessage(err), err))
		return
	}
	respondSuccess(c, info)
}
