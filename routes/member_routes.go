package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/controllers"
	"github.com/HSouheill/sower_backend/middleware"
)

// RegisterMemberRoutes registers member, referral tree and referral QR routes
func RegisterMemberRoutes(api *echo.Group, memberController *controllers.MemberController, referralController *controllers.ReferralController) {
	member := api.Group("/member")

	member.POST("/create-member", memberController.CreateMember, middleware.RequireJSON())
	member.PUT("/update-member", memberController.UpdateMember, middleware.RequireJSON())
	member.GET("/check-member/:id", memberController.GetMember)

	member.GET("/view-referrals", referralController.ViewReferrals)
	member.GET("/referral-tree", referralController.GetReferralTree)
	member.GET("/referral-qrcode", referralController.GetReferralQRCode)

	// Directory management
	admin := middleware.RequireUserType(AdminUserType)
	member.GET("/members", memberController.ListMembers, admin)
	member.GET("/type/:memberType", memberController.ListMembersByType, admin)
	member.DELETE("/:id", memberController.DeleteMember, admin)
}
