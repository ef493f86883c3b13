package services_test

import (
	"regexp"
	"strings"
	"testing"

	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-[0-9A-Z]+-[0-9A-Z]+$`)

func TestNewOrderNumber_Format(t *testing.T) {
	number := services.NewOrderNumber()

	assert.Regexp(t, orderNumberPattern, number)
	assert.Equal(t, number, strings.ToUpper(number))
}

func TestNewOrderNumber_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number := services.NewOrderNumber()
		assert.False(t, seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
}
