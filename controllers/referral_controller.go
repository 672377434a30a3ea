package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/services"
	"github.com/HSouheill/sower_backend/utils"
)

// ReferralController serves referral trees, direct referral summaries and referral QR codes.
type ReferralController struct {
	referrals *services.ReferralService
	members   *services.MemberService
	linkBase  string
}

func NewReferralController(referrals *services.ReferralService, members *services.MemberService, linkBase string) *ReferralController {
	return &ReferralController{referrals: referrals, members: members, linkBase: linkBase}
}

// GetReferralTree returns the caller's referral tree down to seven levels.
func (rc *ReferralController) GetReferralTree(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	tree, err := rc.referrals.BuildReferralTree(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Referral tree retrieved successfully", tree)
}

// ViewReferrals returns the caller's direct referrals.
func (rc *ReferralController) ViewReferrals(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	referrals, err := rc.referrals.GetFlatReferrals(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Referrals retrieved successfully", referrals)
}

// GetReferralQRCode endpoint to get QR code for the caller's referral link
func (rc *ReferralController) GetReferralQRCode(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	member, err := rc.members.GetMember(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	link, err := utils.ReferralLink(rc.linkBase, member.ReferralCode)
	if err != nil {
		return respondError(c, err)
	}
	qrCode, err := utils.GenerateQRCodeDataURI(link)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, "QR code generated successfully", map[string]string{
		"referralCode": member.ReferralCode,
		"referralLink": link,
		"qrCode":       qrCode,
	})
}
