package handlers

import (
	"github.com/gin-gonic/gin"

	"kontora/internal/domain/catalogs/usergroup"
	"kontora/internal/infrastructure/http/v1/dto"
)

// GroupHandler extends the generic group routes with membership
// management.
type GroupHandler struct {
	*RecordHandler[*usergroup.UserGroup]
	service *usergroup.Service
}

// NewGroupHandler creates a new user group handler.
func NewGroupHandler(base *BaseHandler, service *usergroup.Service) *GroupHandler {
	return &GroupHandler{
		RecordHandler: NewRecordHandler[*usergroup.UserGroup](base, service, "user group"),
		service:       service,
	}
}

// Members handles GET /user-groups/:id/members.
func (h *GroupHandler) Members(c *gin.Context) {
	members, err := h.service.Members(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: members, TotalCount: len(members)})
}

// AddMember handles PUT /user-groups/:id/members/:userId.
func (h *GroupHandler) AddMember(c *gin.Context) {
	if err := h.service.AddUser(c.Request.Context(), c.Param("id"), c.Param("userId")); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "user added to group")
}

// RemoveMember handles DELETE /user-groups/:id/members/:userId.
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	if err := h.service.RemoveUser(c.Request.Context(), c.Param("id"), c.Param("userId")); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "user removed from group")
}

// Recount handles POST /user-groups/:id/recount.
func (h *GroupHandler) Recount(c *gin.Context) {
	if err := h.service.Recount(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "member count refreshed")
}
