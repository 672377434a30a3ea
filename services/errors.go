// services/errors.go
package services

import "errors"

// Sentinel errors returned by the member, referral and golden seat services.
// Controllers map them to HTTP status codes.
var (
	ErrUnauthenticated       = errors.New("caller identity could not be established")
	ErrMemberNotFound        = errors.New("member not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidReferral       = errors.New("invalid referral code")
	ErrUnrecognizedPosition  = errors.New("unrecognized golden seat position")
	ErrDataAnomaly           = errors.New("referral code reachable through more than one branch")
	ErrMemberExists          = errors.New("member already enrolled")
	ErrDuplicateReferralCode = errors.New("referral code already in use")
	ErrInvalidMemberType     = errors.New("invalid member type")
	ErrHasDescendants        = errors.New("member still has referrals")
)
