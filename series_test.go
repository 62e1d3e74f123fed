package emx

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollectSeries(t *testing.T) {
	attitude_payload := encode_blob(t, binary.LittleEndian,
		AttitudeInfo{Num_entries: 2},
		[]AttitudeData{
			{Time_ms: 0, Roll: -55, Pitch: 120, Heave: -300, Heading: 9000},
			{Time_ms: 250, Roll: -60, Pitch: 110, Heave: -250, Heading: 9010},
		},
	)
	position_payload := encode_blob(t, binary.LittleEndian,
		PositionInfo{
			Latitude:  -640_000_000,
			Longitude: 1_450_000_000,
			Speed:     320,
			Course:    9000,
			Heading:   9015,
		},
	)

	stream := test_stream(
		encode_record(t, binary.LittleEndian, ATTITUDE, 2040, 20200101, 1000, 1, attitude_payload),
		encode_record(t, binary.LittleEndian, POSITION, 2040, 20200101, 2000, 2, position_payload),
		encode_record(t, binary.LittleEndian, DEPTH, 2040, 20200101, 3000, 3,
			depth_payload(t, binary.LittleEndian, nil)),
	)

	decoder := NewDecoder(stream, Config{})
	attitude, position, err := CollectSeries(decoder)
	require.NoError(t, err)

	require.Len(t, attitude.Timestamp, 2)
	base := time.Date(2020, 1, 1, 0, 0, 1, 0, time.UTC)
	require.Equal(t, base, attitude.Timestamp[0])
	require.Equal(t, base.Add(250*time.Millisecond), attitude.Timestamp[1])

	// angles unscale from 0.01deg, heave from cm
	require.InDelta(t, -0.55, float64(attitude.Roll[0]), 1e-6)
	require.InDelta(t, 1.20, float64(attitude.Pitch[0]), 1e-6)
	require.InDelta(t, -3.0, float64(attitude.Heave[0]), 1e-6)
	require.InDelta(t, 90.0, float64(attitude.Heading[0]), 1e-6)

	require.Len(t, position.Timestamp, 1)
	require.InDelta(t, -32.0, position.Latitude[0], 1e-7)
	require.InDelta(t, 145.0, position.Longitude[0], 1e-7)
	require.InDelta(t, 3.2, float64(position.Speed[0]), 1e-6)
}
