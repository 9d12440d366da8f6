package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/invoices/", "200"))
	RecordAPIRequest("GET", "/invoices/", "200", 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/invoices/", "200"))

	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestRecordStoreOperation_CountsErrors(t *testing.T) {
	before := testutil.ToFloat64(DBOperationErrors.WithLabelValues("find", "metrics_test"))
	RecordStoreOperation("find", "metrics_test", time.Millisecond, nil)
	RecordStoreOperation("find", "metrics_test", time.Millisecond, errors.New("boom"))
	after := testutil.ToFloat64(DBOperationErrors.WithLabelValues("find", "metrics_test"))

	if after-before != 1 {
		t.Errorf("store_operation_errors_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}
