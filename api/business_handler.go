package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/prospect/workflow"
)

func (a *API) createBusiness(ctx forge.Context) error {
	var req CreateBusinessRequest
	if err := bind(ctx, &req); err != nil {
		return ctx.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidBody})
	}

	b, err := a.eng.Create(ctx.Context(), req.FEIN, req.Name)
	if err != nil {
		return a.writeError(ctx, err, msgCreateFailed)
	}

	return ctx.Status(http.StatusCreated).JSON(BusinessResponse{Success: true, Business: b})
}

func (a *API) progressBusiness(ctx forge.Context) error {
	var req ProgressRequest
	if err := bind(ctx, &req); err != nil {
		return ctx.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidBody})
	}

	res, err := a.eng.Progress(ctx.Context(), ctx.Param("fein"), workflow.Input{
		Industry: req.Industry,
		Contact:  req.Contact,
		Status:   req.Status,
	})
	if err != nil {
		return a.writeError(ctx, err, msgProgressFailed)
	}

	return ctx.JSON(http.StatusOK, ProgressResponse{
		Success:  true,
		Business: res.Business,
		Message:  res.Message,
	})
}

func (a *API) businessStatus(ctx forge.Context) error {
	b, err := a.eng.GetStatus(ctx.Context(), ctx.Param("fein"))
	if err != nil {
		return a.writeError(ctx, err, msgStatusFailed)
	}

	return ctx.JSON(http.StatusOK, BusinessResponse{Success: true, Business: b})
}
