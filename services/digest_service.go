package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/utils"
)

// DigestService emails the operator a summary of listings that expire
// soon, built on the expiring-listings report.
type DigestService struct {
	snap     *SnapshotService
	insights *InsightsService
}

func NewDigestService(snap *SnapshotService, insights *InsightsService) *DigestService {
	return &DigestService{snap: snap, insights: insights}
}

// SendExpiryDigest mails the listings expiring within the next days days
// to the given address and returns how many listings the digest covered.
func (s *DigestService) SendExpiryDigest(ctx context.Context, to string, today time.Time, days int) (int, error) {
	snap, err := s.snap.Load(ctx)
	if err != nil {
		return 0, err
	}

	expiring := s.insights.ListingsExpiringWithin(snap, today, days)
	if len(expiring) == 0 {
		return 0, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Food listings expiring within %d days:\n\n", days)
	for _, l := range expiring {
		fmt.Fprintf(&b, "- %s (%d units) at %s, expires %s\n",
			l.FoodName, l.Quantity, l.Location, l.ExpiryDate.Format("2006-01-02"))
	}

	subject := fmt.Sprintf("Expiry digest: %d listings expiring soon", len(expiring))
	if err := utils.SendDigestEmail(ctx, to, subject, b.String()); err != nil {
		return 0, err
	}
	return len(expiring), nil
}
