package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"net/url"
	"strings"
)

// ReferralPrefix is the entity prefix of a generated referral code.
type ReferralPrefix string

const (
	MemberPrefix ReferralPrefix = "MBR"
)

const referralSuffixLen = 6

// GenerateReferralCode generates a referral code for the given prefix.
// Format: {PREFIX}-{RANDOM} where RANDOM is 6 uppercase alphanumeric characters
// Example: MBR-ABC123
func GenerateReferralCode(prefix ReferralPrefix) (string, error) {
	// 4 random bytes give 7 base32 characters
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	randomStr := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	randomStr = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.ToUpper(randomStr))

	if len(randomStr) > referralSuffixLen {
		randomStr = randomStr[:referralSuffixLen]
	}
	if len(randomStr) < referralSuffixLen {
		randomStr += strings.Repeat("0", referralSuffixLen-len(randomStr))
	}

	return string(prefix) + "-" + randomStr, nil
}

// GenerateMemberReferralCode generates a referral code for a member
func GenerateMemberReferralCode() (string, error) {
	return GenerateReferralCode(MemberPrefix)
}

// ReferralLink builds the sign-up link encoded in a member's QR code.
func ReferralLink(base, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("empty referral code")
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid referral link base: %w", err)
	}
	q := u.Query()
	q.Set("code", code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
