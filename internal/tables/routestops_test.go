package tables

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRouteStops(t *testing.T) {
	data := `route_id,stop_id,order
R1A,S3,3
R1A,S1,1
R1A,S2,2
R1B,S3,1
R1B,S1,2
R2A,S1,1
R2A,S2,1
R2A,S3,2
R3A,S1,1
R3A,S3,3
R4A,S1,x
R4A,S2,0
,S1,1
`
	orders, problems, err := LoadRouteStops(FromBytes("route_stops.csv", []byte(data)), LoadOptions{})
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, RouteVariantOrder{VariantID: "R1A", Stops: []string{"S1", "S2", "S3"}}, orders["R1A"])
	assert.Equal(t, []string{"S3", "S1"}, orders["R1B"].Stops)
	assert.Equal(t, "S1", orders["R1A"].First())
	assert.Equal(t, "S3", orders["R1A"].Last())

	_, ok := orders["R2A"]
	assert.False(t, ok, "duplicate position rejects the variant")
	_, ok = orders["R3A"]
	assert.False(t, ok, "gap rejects the variant")

	var seqErrs []*SequenceError
	var rowErrs []*MalformedRecordError
	for _, p := range problems {
		var se *SequenceError
		var mre *MalformedRecordError
		switch {
		case errors.As(p, &se):
			seqErrs = append(seqErrs, se)
		case errors.As(p, &mre):
			rowErrs = append(rowErrs, mre)
		}
	}

	require.Len(t, seqErrs, 2)
	assert.Equal(t, "R2A", seqErrs[0].VariantID)
	assert.ErrorIs(t, seqErrs[0], ErrDuplicatePosition)
	assert.Equal(t, "R3A", seqErrs[1].VariantID)
	assert.Equal(t, 2, seqErrs[1].Position)
	assert.ErrorIs(t, seqErrs[1], ErrSequenceGap)

	require.Len(t, rowErrs, 3)
	assert.Equal(t, "order", rowErrs[0].Field)
	assert.ErrorIs(t, rowErrs[1], ErrInvalidOrder)
	assert.Equal(t, "route_id", rowErrs[2].Field)
}

func TestLoadRouteStopsLenientOrderStillRejected(t *testing.T) {
	data := "route_id,stop_id,order\nR1A,S1,1\nR1A,S2,\n"

	orders, problems, err := LoadRouteStops(FromBytes("route_stops.csv", []byte(data)), LoadOptions{LenientNumbers: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"S1"}, orders["R1A"].Stops)
	require.Len(t, problems, 2)
	assert.ErrorIs(t, problems[0], ErrDefaultedToZero)
	assert.ErrorIs(t, problems[1], ErrInvalidOrder)
}

func TestLoadRouteStopsMissingColumn(t *testing.T) {
	_, _, err := LoadRouteStops(FromBytes("route_stops.csv", []byte("route_id,stop_id\nR1A,S1\n")), LoadOptions{})

	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}
