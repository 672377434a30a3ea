package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/services"
	"github.com/HSouheill/sower_backend/utils"
)

// MemberController handles enrollment and member directory requests.
type MemberController struct {
	enrollment *services.EnrollmentService
	members    *services.MemberService
}

func NewMemberController(enrollment *services.EnrollmentService, members *services.MemberService) *MemberController {
	return &MemberController{enrollment: enrollment, members: members}
}

// CreateMember enrolls the caller, or the memberID given in the body.
func (mc *MemberController) CreateMember(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.EnrollMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		fields := utils.InvalidFields(err)
		if len(fields) == 0 {
			return badRequest(c, "Invalid request body")
		}
		return badRequest(c, "Missing required fields: "+strings.Join(fields, ", "))
	}

	result, err := mc.enrollment.Enroll(c.Request().Context(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusCreated, "Member created and golden seats assigned successfully", result)
}

// UpdateMember promotes the caller to the tier or position in the body.
func (mc *MemberController) UpdateMember(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "Position is required")
	}

	member, err := mc.members.UpdateMemberType(c.Request().Context(), userID, req.Position)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Member updated successfully", member)
}

func (mc *MemberController) GetMember(c echo.Context) error {
	member, err := mc.members.GetMember(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Member retrieved successfully", member)
}

func (mc *MemberController) ListMembers(c echo.Context) error {
	members, err := mc.members.ListMembers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Members retrieved successfully", members)
}

func (mc *MemberController) ListMembersByType(c echo.Context) error {
	memberType := models.MemberType(c.Param("memberType"))
	members, err := mc.members.ListMembersByType(c.Request().Context(), memberType)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Members retrieved successfully", members)
}

func (mc *MemberController) DeleteMember(c echo.Context) error {
	if err := mc.members.DeleteMember(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Member deleted successfully", nil)
}
