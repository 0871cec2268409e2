package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ad_generator_v1/internal/model"
)

// AdGenerator 广告生成编排
type AdGenerator interface {
	GenerateAds(ctx context.Context, req model.GenerationRequest) *model.GenerationResult
}

type AdController struct {
	generator AdGenerator
}

func NewAdController(generator AdGenerator) *AdController {
	return &AdController{generator: generator}
}

// Generate 生成广告
// @Summary 生成广告
// @Description 根据需求与投放市场生成一批面向不同画像的广告；部分失败仍返回 success=true
// @Tags Ads
// @Accept json
// @Produce json
// @Param request body model.GenerationRequest true "生成参数"
// @Success 200 {object} model.GenerationResult
// @Failure 400 {object} map[string]interface{} "缺少必填字段"
// @Router /generate-ads [post]
func (h *AdController) Generate(c *gin.Context) {
	var req model.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	// 画像获取失败也是结构完整的结果，仍返回 200
	res := h.generator.GenerateAds(c.Request.Context(), req)
	c.JSON(http.StatusOK, res)
}
