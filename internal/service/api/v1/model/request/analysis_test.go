package request

import (
	"testing"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/stretchr/testify/assert"
)

func TestAnalysisRequest_Empty(t *testing.T) {
	t.Parallel()

	assert.True(t, (&AnalysisRequest{}).Empty())
	assert.True(t, (&AnalysisRequest{Label: "빈 요청"}).Empty())
	assert.False(t, (&AnalysisRequest{Old: []contract.Record{{SKU: "A-1", Price: 10}}}).Empty())
	assert.False(t, (&AnalysisRequest{New: []contract.Record{{SKU: "A-1", Price: 10}}}).Empty())
}
