package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nqueens/internal/model"
)

func TestRunRecordCodecRoundTrip(t *testing.T) {
	record := sampleRecord("run-1", "2026-08-27T10:00:00Z")

	payload, err := EncodeRunRecord(record)
	require.NoError(t, err)

	decoded, err := DecodeRunRecord(payload)
	require.NoError(t, err)
	require.Equal(t, record, decoded)
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	record := sampleRecord("run-1", "2026-08-27T10:00:00Z")
	record.SchemaVersion = CurrentSchemaVersion + 1

	payload, err := EncodeRunRecord(record)
	require.NoError(t, err)

	_, err = DecodeRunRecord(payload)
	require.ErrorIs(t, err, ErrVersionMismatch)

	profiles := model.ProfileSet{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: CurrentSchemaVersion,
			CodecVersion:  CurrentCodecVersion + 1,
		},
	}
	payload, err = EncodeProfiles(profiles)
	require.NoError(t, err)

	_, err = DecodeProfiles(payload)
	require.ErrorIs(t, err, ErrVersionMismatch)
}
