package allowance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clb2clb2/sgtri-desp-sub000/calendar"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
)

func TestSegment_LegFailureDegradesTrip(t *testing.T) {
	// GIVEN: crossings in the wrong order, which the gate would normally stop
	out := calendar.NewDate(2025, 1, 4)
	back := calendar.NewDate(2025, 1, 2)
	s := tripSpan{
		depDate:   calendar.NewDate(2025, 1, 1),
		retDate:   calendar.NewDate(2025, 1, 5),
		depClock:  calendar.NewClock(10, 0),
		retClock:  calendar.NewClock(23, 0),
		crossOut:  &out,
		crossBack: &back,
	}
	in := TripInput{Destination: rates.DestinationName("Japón")}

	// WHEN: splitting into legs
	segments, derr := NewEngine(rates.DefaultTable()).segment(in, s, rates.NormativeDecreto)

	// THEN: the destination leg's failure is reported, not a zero leg
	require.NotNil(t, derr)
	assert.ErrorIs(t, derr, ErrReturnBeforeDeparture)
	assert.Equal(t, "destination leg", derr.Detail)
	assert.Nil(t, segments)
}
