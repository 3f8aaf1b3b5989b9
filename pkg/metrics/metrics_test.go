package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOrderCreated(t *testing.T) {
	before := testutil.ToFloat64(OrdersCreated)
	RecordOrderCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(OrdersCreated))
}

func TestRecordHttpRequest(t *testing.T) {
	before := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/api/products", "OK"))
	RecordHttpRequest("GET", "/api/products", "OK", 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/api/products", "OK")))
}

func TestRecordPaymentByMethod(t *testing.T) {
	before := testutil.ToFloat64(PaymentsRecorded.WithLabelValues("transfer"))
	RecordPayment("transfer")
	RecordPayment("transfer")
	assert.Equal(t, before+2, testutil.ToFloat64(PaymentsRecorded.WithLabelValues("transfer")))
}

func TestRecordPaymentBucketsUnknownMethods(t *testing.T) {
	before := testutil.CollectAndCount(PaymentsRecorded)
	otherBefore := testutil.ToFloat64(PaymentsRecorded.WithLabelValues("other"))

	for i := 0; i < 50; i++ {
		RecordPayment(fmt.Sprintf("m-%d", i))
	}
	RecordPayment(" Transfer ")

	assert.LessOrEqual(t, testutil.CollectAndCount(PaymentsRecorded), before+2)
	assert.Equal(t, otherBefore+50, testutil.ToFloat64(PaymentsRecorded.WithLabelValues("other")))
	assert.Equal(t, "transfer", paymentMethodLabel(" Transfer "))
}
