package tickets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_Total(t *testing.T) {
	req := Aggregate(10, 2, 1, 0)
	assert.Equal(t, 10, req.ParticipantAdults)
	assert.Equal(t, 2, req.ParticipantChildren)
	assert.Equal(t, 1, req.GuideAdultTickets)
	assert.Equal(t, 0, req.GuideChildTickets)
	assert.Equal(t, 13, req.Total)
}

func TestAggregate_ClampsNegatives(t *testing.T) {
	req := Aggregate(-3, 2, -1, 4)
	assert.Equal(t, 0, req.ParticipantAdults)
	assert.Equal(t, 0, req.GuideAdultTickets)
	assert.Equal(t, 6, req.Total)
}
