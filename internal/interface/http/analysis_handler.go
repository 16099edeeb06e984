package http

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/agriguard/agriguard/internal/domain/diagnosis"
)

type imageAnalysisRequest struct {
	ImageBase64  string `json:"image_base64" binding:"required"`
	FieldContext string `json:"field_context"`
}

// AnalyzeLeaf diagnoses a base64-encoded leaf image.
func (h *Handler) AnalyzeLeaf(c *gin.Context) {
	var req imageAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, errMessage(err), err))
		return
	}

	result := h.diagnosisSvc.AnalyzeLeaf(c.Request.Context(), req.ImageBase64, req.FieldContext)
	respondSuccess(c, result)
}

// AnalyzeLeafUpload accepts a multipart file upload for leaf diagnosis.
func (h *Handler) AnalyzeLeafUpload(c *gin.Context) {
	data, mimeType, ok := h.readUpload(c)
	if !ok {
		return
	}

	cropType := c.PostForm("crop_type")
	fieldContext := c.PostForm("context")
	if cropType != "" {
		fieldContext = fmt.Sprintf("Crop: %s. %s", cropType, fieldContext)
	}

	h.archiveUpload(c, "leaf", data, mimeType)
	imageBase64 := base64.StdEncoding.EncodeToString(data)

	result := h.diagnosisSvc.AnalyzeLeaf(c.Request.Context(), imageBase64, fieldContext)
	respondSuccess(c, result)
}

// AnalyzeField builds a health map from satellite or drone imagery.
func (h *Handler) AnalyzeField(c *gin.Context) {
	var req imageAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, errMessage(err), err))
		return
	}

	result := h.diagnosisSvc.AnalyzeField(c.Request.Context(), req.ImageBase64, req.FieldContext)
	respondSuccess(c, result)
}

// QuickDiagnosis answers a free-form question about an uploaded image.
func (h *Handler) QuickDiagnosis(c *gin.Context) {
	data, mimeType, ok := h.readUpload(c)
	if !ok {
		return
	}

	question := c.DefaultPostForm("question", "What's wrong with this plant?")
	h.archiveUpload(c, "quick", data, mimeType)
	imageBase64 := base64.StdEncoding.EncodeToString(data)

	answer := h.diagnosisSvc.QuickDiagnosis(c.Request.Context(), imageBase64, question)
	respondSuccess(c, gin.H{"response": answer})
}

// CommonIssues lists the known diseases and pests for a crop.
func (h *Handler) CommonIssues(c *gin.Context) {
	crop := c.Param("crop")
	diseases, pests := diagnosis.CommonIssues(crop)
	respondSuccess(c, gin.H{
		"crop":     crop,
		"diseases": diseases,
		"pests":    pests,
	})
}

// readUpload pulls the multipart file into memory and reports its MIME type.
func (h *Handler) readUpload(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "file is required", err))
		return nil, "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "cannot open upload", err))
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "cannot read upload", err))
		return nil, "", false
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return data, mimeType, true
}

// archiveUpload stores the original bytes; failures only log.
func (h *Handler) archiveUpload(c *gin.Context, kind string, data []byte, mimeType string) {
	if h.archive == nil {
		return
	}
	if _, err := h.archive.Save(c.Request.Context(), kind, data, mimeType); err != nil {
		h.logger.Warn("upload archive failed", "kind", kind, "error", err)
	}
}
