package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-backend/models"
	"travel-backend/testutil"
)

func seedEnquiry(t *testing.T, svc *DashboardService, name, status string, created time.Time) models.Enquiry {
	t.Helper()
	e := models.Enquiry{Name: name, Email: name + "@example.com", Source: models.EnquirySourceContactPage, Status: status, CreatedAt: created}
	require.NoError(t, svc.DB.Create(&e).Error)
	return e
}

func TestDashboardService_Counts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewDashboardService(db)
	now := time.Now()

	testutil.Package(t, db, testutil.PackageOpts{Slug: "a"})
	testutil.Package(t, db, testutil.PackageOpts{Slug: "b", Inactive: true})
	testutil.Destination(t, db, "goa", "Goa")
	require.NoError(t, db.Create(&models.Review{Name: "R", Rating: 5}).Error)
	require.NoError(t, db.Create(&models.Review{Name: "S", Rating: 4, IsApproved: true}).Error)
	seedEnquiry(t, svc, "a", models.EnquiryStatusNew, now)
	seedEnquiry(t, svc, "b", models.EnquiryStatusNew, now)
	seedEnquiry(t, svc, "c", models.EnquiryStatusClosed, now)

	got, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Packages)
	assert.Equal(t, int64(1), got.ActivePackages)
	assert.Equal(t, int64(1), got.Destinations)
	assert.Equal(t, int64(0), got.Blogs)
	assert.Equal(t, int64(1), got.PendingReviews)
	assert.Equal(t, int64(3), got.Enquiries)
	assert.Equal(t, int64(2), got.ByStatus[models.EnquiryStatusNew])
	assert.Equal(t, int64(1), got.ByStatus[models.EnquiryStatusClosed])
	assert.Equal(t, int64(0), got.ByStatus[models.EnquiryStatusConverted])
}

func TestDashboardService_NotificationsArePollable(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewDashboardService(db)
	base := time.Now().Add(-time.Hour).UTC()

	seedEnquiry(t, svc, "old", models.EnquiryStatusNew, base)
	seedEnquiry(t, svc, "fresh", models.EnquiryStatusNew, base.Add(30*time.Minute))
	seedEnquiry(t, svc, "handled", models.EnquiryStatusContacted, base.Add(40*time.Minute))

	all, err := svc.Notifications(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.UnreadCount)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "fresh", all.Items[0].Name)

	since := base.Add(10 * time.Minute)
	first, err := svc.Notifications(context.Background(), &since, 10)
	require.NoError(t, err)
	second, err := svc.Notifications(context.Background(), &since, 10)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, "fresh", first.Items[0].Name)
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.UnreadCount, second.UnreadCount)
}
