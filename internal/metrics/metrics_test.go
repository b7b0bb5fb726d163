package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/sessions", "201", 0.1)
	RecordHTTPRequest("POST", "/sessions", "201", 0.2)
	RecordHTTPRequest("POST", "/sessions", "409", 0.05)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/sessions", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/sessions", "409")))
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordBooking(t *testing.T) {
	BookingOperationsTotal.Reset()

	RecordBooking("book_private_session", "ok")
	RecordBooking("book_private_session", "resource_conflict")
	RecordBooking("register_for_class", "capacity_exceeded")
	RecordBooking("book_private_session", "ok")

	assert.Equal(t, float64(2), testutil.ToFloat64(BookingOperationsTotal.WithLabelValues("book_private_session", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingOperationsTotal.WithLabelValues("book_private_session", "resource_conflict")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingOperationsTotal.WithLabelValues("register_for_class", "capacity_exceeded")))
}

func TestRecordConflict(t *testing.T) {
	ConflictsTotal.Reset()

	RecordConflict("room_class_conflict")
	RecordConflict("room_class_conflict")
	RecordConflict("member_session_conflict")

	assert.Equal(t, float64(2), testutil.ToFloat64(ConflictsTotal.WithLabelValues("room_class_conflict")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ConflictsTotal.WithLabelValues("member_session_conflict")))
}

func TestRecordNotification(t *testing.T) {
	NotificationsTotal.Reset()

	RecordNotification("session_booked", "queued")
	RecordNotification("session_booked", "failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(NotificationsTotal.WithLabelValues("session_booked", "queued")))
	assert.Equal(t, float64(1), testutil.ToFloat64(NotificationsTotal.WithLabelValues("session_booked", "failed")))
}

func TestNotifyQueueLength(t *testing.T) {
	SetNotifyQueueLength(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(NotifyQueueLength))

	SetNotifyQueueLength(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(NotifyQueueLength))
}
