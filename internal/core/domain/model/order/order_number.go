package order

import (
	"strings"
	"time"

	"climasite/internal/core/domain/model/kernel"
)

const orderNumberPrefix = "CS"

// NewOrderNumber builds the customer facing reference CS-YYYYMMDD-XXXXXXXX from
// the order date and the first eight hex digits of the order id.
func NewOrderNumber(at time.Time, id kernel.UUID) string {
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return orderNumberPrefix + "-" + at.UTC().Format("20060102") + "-" + hex[:8]
}
