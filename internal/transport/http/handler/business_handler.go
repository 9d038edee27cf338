package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"business-directory/internal/domain"
	"business-directory/internal/feature/business"
	"business-directory/internal/transport/http/ez"
	resp "business-directory/internal/transport/http/response"
)

type BusinessService interface {
	Search(ctx context.Context, p business.Params) (*business.Page, error)
	Get(ctx context.Context, id string) (*domain.Business, error)
	Create(ctx context.Context, in *domain.BusinessInput) (*domain.Business, error)
	Update(ctx context.Context, id string, in *domain.BusinessInput) (*domain.Business, error)
	Delete(ctx context.Context, id string) (*domain.Business, error)
	Categories() []string
}

type BusinessHandler struct{ svc BusinessService }

func NewBusinessHandler(svc BusinessService) *BusinessHandler { return &BusinessHandler{svc: svc} }

func (h *BusinessHandler) Priority() int { return 10 }

// MountAPI 挂载 /businesses 资源
func (h *BusinessHandler) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/businesses")

	ez.RegisterAction(g, ez.Action[struct{}, resp.Envelope]{
		Method:  http.MethodGet,
		Path:    "/meta/categories",
		Binder:  ez.BindNone,
		Handler: h.categories,
	})
	ez.RegisterAction(g, ez.Action[listQuery, resp.PageEnvelope]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  ez.BindQuery,
		Handler: h.list,
	})
	ez.RegisterAction(g, ez.Action[struct{}, resp.Envelope]{
		Method:  http.MethodGet,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Handler: h.get,
	})
	ez.RegisterAction(g, ez.Action[domain.BusinessInput, resp.Envelope]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Handler: h.create,
	})
	ez.RegisterAction(g, ez.Action[domain.BusinessInput, resp.Envelope]{
		Method:  http.MethodPut,
		Path:    "/:id",
		Binder:  ez.BindJSON,
		Handler: h.update,
	})
	ez.RegisterAction(g, ez.Action[struct{}, resp.Envelope]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Handler: h.delete,
	})
}

type listQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	City     string `form:"city"`
	Page     *int   `form:"page"`
	Limit    *int   `form:"limit"`
}

func (h *BusinessHandler) list(c *gin.Context, in *listQuery) (resp.PageEnvelope, error) {
	page, err := h.svc.Search(c.Request.Context(), business.Params{
		Search:   in.Search,
		Category: in.Category,
		City:     in.City,
		Page:     in.Page,
		Limit:    in.Limit,
	})
	if err != nil {
		return resp.PageEnvelope{}, err
	}
	return resp.Page(page.Total, page.Page, page.Pages, page.Data), nil
}

func (h *BusinessHandler) get(c *gin.Context, _ *struct{}) (resp.Envelope, error) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		return resp.Envelope{}, err
	}
	return resp.OK(b), nil
}

func (h *BusinessHandler) create(c *gin.Context, in *domain.BusinessInput) (resp.Envelope, error) {
	b, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		return resp.Envelope{}, err
	}
	return resp.Done(resp.MsgCreated, b), nil
}

func (h *BusinessHandler) update(c *gin.Context, in *domain.BusinessInput) (resp.Envelope, error) {
	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		return resp.Envelope{}, err
	}
	return resp.Done(resp.MsgUpdated, b), nil
}

func (h *BusinessHandler) delete(c *gin.Context, _ *struct{}) (resp.Envelope, error) {
	b, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		return resp.Envelope{}, err
	}
	return resp.Done(resp.MsgDeleted, b), nil
}

func (h *BusinessHandler) categories(_ *gin.Context, _ *struct{}) (resp.Envelope, error) {
	return resp.OK(h.svc.Categories()), nil
}
