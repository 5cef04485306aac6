package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func bindPaymentStatus(t *testing.T, status string) error {
	t.Helper()
	req := httptest.NewRequest("PATCH", "/", strings.NewReader(`{"payment_status":"`+status+`"}`))
	var in updatePaymentStatusRequest
	return binding.JSON.Bind(req, &in)
}

func TestPaymentStatusAcceptsKnownValues(t *testing.T) {
	for _, s := range []string{"none", "pending", "paid", "unpaid"} {
		assert.NoError(t, bindPaymentStatus(t, s), s)
	}
}

func TestPaymentStatusRejectsUnknownValues(t *testing.T) {
	for _, s := range []string{"overdue", "cancelled", ""} {
		assert.Error(t, bindPaymentStatus(t, s), s)
	}
}
